package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/shader"
)

// link compiles and links the GLSL stages and resolves the scene's bindings.
func (t *Target) link(infos []shader.Info) error {
	if infos == nil {
		infos = shader.GLSLInfos()
	}
	prog, err := shader.LoadProgram(infos)
	if err != nil {
		return fmt.Errorf("opengl: %w", err)
	}
	if prog.Language != shader.GLSL {
		return fmt.Errorf("opengl: program is %s, want GLSL", prog.Language)
	}
	// Reflection names the missing symbol and its files before the driver
	// gets a chance to optimize it away.
	if _, err := prog.Locations(); err != nil {
		return fmt.Errorf("opengl: %w", err)
	}

	program, err := createProgram(prog.Sources)
	if err != nil {
		return err
	}
	t.program = program

	locs, err := resolve(program)
	if err != nil {
		return err
	}
	t.locs = locs
	t.layouts = locs.VertexLayouts()

	windmill.Logger().Info("opengl: program linked",
		"stages", len(prog.Sources), "position", locs.Position, "color", locs.Color, "model", locs.Model)
	return nil
}

// resolve looks up the attribute and uniform locations of a linked program.
func resolve(program uint32) (shader.Locations, error) {
	pos := gl.GetAttribLocation(program, gl.Str(shader.AttrPosition+"\x00"))
	if pos < 0 {
		return shader.Locations{}, fmt.Errorf("opengl: attribute %s: %w", shader.AttrPosition, shader.ErrMissingSymbol)
	}
	col := gl.GetAttribLocation(program, gl.Str(shader.AttrColor+"\x00"))
	if col < 0 {
		return shader.Locations{}, fmt.Errorf("opengl: attribute %s: %w", shader.AttrColor, shader.ErrMissingSymbol)
	}
	model := gl.GetUniformLocation(program, gl.Str(shader.UniformModel+"\x00"))
	if model < 0 {
		return shader.Locations{}, fmt.Errorf("opengl: uniform %s: %w", shader.UniformModel, shader.ErrMissingSymbol)
	}
	return shader.Locations{Position: uint32(pos), Color: uint32(col), Model: model}, nil
}

// createProgram compiles every source and links them into one program.
func createProgram(sources []shader.Source) (uint32, error) {
	shaders := make([]uint32, 0, len(sources))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, src := range sources {
		s, err := compileShader(src)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("opengl: link %s: %w: %s", paths(sources), shader.ErrLink, strings.TrimRight(log, "\x00"))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

// compileShader compiles one stage.
func compileShader(src shader.Source) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if src.Stage == shader.Fragment {
		kind = gl.FRAGMENT_SHADER
	}
	s := gl.CreateShader(kind)

	csources, free := gl.Strs(src.Code + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s, logLength, nil, gl.Str(log))
		gl.DeleteShader(s)
		return 0, fmt.Errorf("opengl: compile %s stage %s: %w: %s", src.Stage, src.Path, shader.ErrCompile, strings.TrimRight(log, "\x00"))
	}
	return s, nil
}

func paths(sources []shader.Source) string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Path
	}
	return strings.Join(names, ", ")
}
