package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeKnownCodes(t *testing.T) {
	for code, want := range wmoDescriptions {
		got := Describe(code)
		assert.NotEmpty(t, got, "code %d must have a description", code)
		assert.Equal(t, want, got)
	}
}

func TestDescribeUnknownCode(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 100, 999} {
		assert.Empty(t, Describe(code), "unknown code %d must describe as empty", code)
	}
}

func TestIsClear(t *testing.T) {
	assert.True(t, IsClear(0))
	assert.True(t, IsClear(1))
	assert.False(t, IsClear(2))
	assert.False(t, IsClear(61))
}
