package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyCallbackDispatch(t *testing.T) {
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}
	calls := 0
	c.RegisterKeyCallback(glfw.KeyQ, func() { calls++ })

	c.glfwKeyCallback(nil, glfw.KeyQ, 0, glfw.Release, 0)
	assert.Equal(t, 0, calls, "release must not fire")

	c.glfwKeyCallback(nil, glfw.KeyQ, 0, glfw.Press, 0)
	assert.Equal(t, 1, calls)

	c.glfwKeyCallback(nil, glfw.KeyW, 0, glfw.Press, 0)
	assert.Equal(t, 1, calls, "unregistered key must not fire")
}

func TestCursorCallbackWithoutTracker(t *testing.T) {
	c := &Context{}
	assert.NotPanics(t, func() { c.glfwCursorPosCallback(nil, 10, 10) })
}
