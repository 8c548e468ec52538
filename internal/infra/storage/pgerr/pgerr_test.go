package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("exec: %w", &pq.Error{Code: "23505"})

	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
}
