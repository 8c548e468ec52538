package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	v := 5
	p := Ptr(v)
	v = 6

	assert.Equal(t, 5, *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 7, Deref[int](nil, 7))
	assert.Equal(t, 3, Deref(Ptr(3), 7))
	assert.Equal(t, "", Deref[string](nil, ""))
}
