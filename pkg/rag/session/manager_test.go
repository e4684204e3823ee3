package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.True(t, strings.HasPrefix(a, "session_"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, "s1", Normalize("  s1 \n"))
}
