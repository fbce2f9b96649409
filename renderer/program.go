package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	shader "github.com/richinsley/palettefold/shader"
	xlate "github.com/richinsley/palettefold/translator"
)

// Program is the linked shader program with its resolved slots. A location of
// -1 means the driver dropped the variable.
type Program struct {
	ID            uint32
	posLoc        int32
	colorLoc      int32
	timeLoc       int32
	cursorLoc     int32
	resolutionLoc int32
}

// buildProgram translates both stages for the current context, links them and
// resolves the attribute and uniform slots by name.
func buildProgram(gles bool) (*Program, error) {
	vs, err := xlate.Translate(shader.Vertex, shader.Source(shader.Vertex), gles)
	if err != nil {
		return nil, err
	}
	fs, err := xlate.Translate(shader.Fragment, shader.Source(shader.Fragment), gles)
	if err != nil {
		return nil, err
	}

	id, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	p := &Program{ID: id}
	gl.UseProgram(id)
	p.posLoc = gl.GetAttribLocation(id, gl.Str(vs.MappedName(shader.AttribPos)+"\x00"))
	p.colorLoc = gl.GetAttribLocation(id, gl.Str(vs.MappedName(shader.AttribColor)+"\x00"))
	p.timeLoc = gl.GetUniformLocation(id, gl.Str(fs.MappedName(shader.UniformTime)+"\x00"))
	p.cursorLoc = gl.GetUniformLocation(id, gl.Str(fs.MappedName(shader.UniformCursor)+"\x00"))
	p.resolutionLoc = gl.GetUniformLocation(id, gl.Str(fs.MappedName(shader.UniformResolution)+"\x00"))
	return p, nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, shader.Vertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, shader.Fragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, &shader.LinkError{Log: strings.TrimRight(logText, "\x00")}
	}

	return program, nil
}

func compileShader(source string, stage shader.Stage) (uint32, error) {
	shaderType := uint32(gl.FRAGMENT_SHADER)
	if stage == shader.Vertex {
		shaderType = gl.VERTEX_SHADER
	}

	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(logText))
		gl.DeleteShader(sh)
		return 0, &shader.CompileError{Stage: stage, Log: strings.TrimRight(logText, "\x00")}
	}
	return sh, nil
}
