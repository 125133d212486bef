package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceKeepsCause(t *testing.T) {
	err := Persistence("venue.create", sql.ErrConnDone)

	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "venue.create", pe.Op)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestPersistencePassesThroughKnownKinds(t *testing.T) {
	nf := &NotFoundError{Resource: "venue", ID: 7}
	assert.Same(t, nf, Persistence("venue.get", nf))
	assert.Nil(t, Persistence("venue.get", nil))

	wrapped := fmt.Errorf("lookup: %w", nf)
	assert.True(t, IsNotFound(Persistence("venue.get", wrapped)))
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := NewValidation(map[string]string{"phone": "bad", "name": "required"})
	assert.Equal(t, "validation failed: name: required; phone: bad", err.Error())

	ve, ok := AsValidation(fmt.Errorf("form: %w", err))
	assert.True(t, ok)
	assert.Len(t, ve.Fields, 2)
}
