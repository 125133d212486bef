// Package flash stores one-shot messages shown on the next rendered page.
package flash

import (
	"github.com/labstack/echo/v4"
)

// Categories understood by the layout template.
const (
	Success = "success"
	Error   = "danger"
)

// Message is one flashed line.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Store persists messages between a write and the page that shows them.
// Messages added during a request are also visible to Pop in that same
// request, which lets an error page show the message it just flashed.
type Store interface {
	Add(c echo.Context, m Message) error
	Pop(c echo.Context) ([]Message, error)
}

const pendingKey = "flash.pending"

func pending(c echo.Context) []Message {
	if v, ok := c.Get(pendingKey).([]Message); ok {
		return v
	}
	return nil
}

func addPending(c echo.Context, m Message) []Message {
	msgs := append(pending(c), m)
	c.Set(pendingKey, msgs)
	return msgs
}

func takePending(c echo.Context) []Message {
	msgs := pending(c)
	c.Set(pendingKey, nil)
	return msgs
}
