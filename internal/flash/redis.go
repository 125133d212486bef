package flash

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// SessionCookie carries the id RedisStore keys messages by.
const SessionCookie = "_flash_sid"

// RedisStore keeps messages in a Redis list per browser session.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "flash", ttl: 10 * time.Minute}
}

const sessionKey = "flash.sid"

// sessionID returns the browser's flash session, creating one if create is set.
func (s *RedisStore) sessionID(c echo.Context, create bool) string {
	if sid, ok := c.Get(sessionKey).(string); ok && sid != "" {
		return sid
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(ck.Value); err == nil {
			c.Set(sessionKey, ck.Value)
			return ck.Value
		}
	}
	if !create {
		return ""
	}
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(sessionKey, sid)
	return sid
}

func (s *RedisStore) key(sid string) string { return s.prefix + ":" + sid }

func (s *RedisStore) Add(c echo.Context, m Message) error {
	addPending(c, m)
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	key := s.key(s.sessionID(c, true))
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, raw)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Pop(c echo.Context) ([]Message, error) {
	sid := s.sessionID(c, false)
	pend := takePending(c)
	if sid == "" {
		return pend, nil
	}
	ctx := c.Request().Context()
	key := s.key(sid)
	var lr *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lr = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return pend, err
	}
	// the stored list already holds the pending messages
	out := make([]Message, 0, len(lr.Val()))
	for _, raw := range lr.Val() {
		var m Message
		if json.Unmarshal([]byte(raw), &m) == nil {
			out = append(out, m)
		}
	}
	return out, nil
}
