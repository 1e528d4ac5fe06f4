package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTo(t *testing.T) {
	p := To("confirmed")
	require.NotNil(t, p)
	assert.Equal(t, "confirmed", *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, int64(7), Deref(To(int64(7))))

	var nilPtr *string
	assert.Equal(t, "", Deref(nilPtr))
}
