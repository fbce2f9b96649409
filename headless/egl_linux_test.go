//go:build linux

package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeadlessInvalidSize(t *testing.T) {
	ctx, err := NewHeadless(-1, -1)
	assert.Error(t, err)
	assert.Nil(t, ctx)
}

func TestHeadlessShutdownTwice(t *testing.T) {
	ctx, err := NewHeadless(16, 16)
	if err != nil {
		t.Skipf("no EGL device available: %v", err)
	}
	require.NotNil(t, ctx)

	w, h := ctx.GetFramebufferSize()
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
	assert.True(t, ctx.IsGLES())
	assert.False(t, ctx.ShouldClose())

	ctx.Shutdown()
	assert.NotPanics(t, ctx.Shutdown)
}
