// Package shader loads the sources of the shared transform program, reflects
// the attribute and uniform symbols it declares, and compiles WGSL stages to
// SPIR-V with naga.
//
// Source paths are read from disk, except paths with the "builtin:" prefix,
// which name the sources embedded in this package:
//
//	builtin:trans.vert   GLSL vertex stage
//	builtin:trans.frag   GLSL fragment stage
//	builtin:trans.wgsl   WGSL module with both entry points
package shader

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Symbol names the scene binds to.
const (
	AttrPosition = "vPosition"
	AttrColor    = "vColor"
	UniformModel = "model_matrix"
)

// BuiltinPrefix marks a path that is read from the embedded sources.
const BuiltinPrefix = "builtin:"

// Errors returned by the package.
var (
	// ErrMissingSymbol is returned when a required attribute or uniform is not declared.
	ErrMissingSymbol = errors.New("shader: missing symbol")

	// ErrStage is returned when a program lacks a vertex or fragment stage.
	ErrStage = errors.New("shader: missing stage")

	// ErrMixedLanguage is returned when stages of one program use different languages.
	ErrMixedLanguage = errors.New("shader: stages use different languages")

	// ErrCompile is returned when a stage fails to compile.
	ErrCompile = errors.New("shader: compile failed")

	// ErrLink is returned when the stages fail to link.
	ErrLink = errors.New("shader: link failed")
)

//go:embed shaders
var builtin embed.FS

// Stage is a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Language is a shading language.
type Language int

const (
	GLSL Language = iota
	WGSL
)

// String returns the language name.
func (l Language) String() string {
	if l == WGSL {
		return "wgsl"
	}
	return "glsl"
}

// LanguageOf infers the language from the file extension: .wgsl is WGSL,
// anything else is GLSL.
func LanguageOf(p string) Language {
	if strings.EqualFold(filepath.Ext(p), ".wgsl") {
		return WGSL
	}
	return GLSL
}

// Info pairs a stage with the path of its source.
type Info struct {
	Stage Stage
	Path  string
}

// Source is a loaded stage.
type Source struct {
	Stage    Stage
	Path     string
	Language Language
	Code     string
}

// GLSLInfos returns the embedded GLSL vertex and fragment stages.
func GLSLInfos() []Info {
	return []Info{
		{Stage: Vertex, Path: BuiltinPrefix + "trans.vert"},
		{Stage: Fragment, Path: BuiltinPrefix + "trans.frag"},
	}
}

// WGSLInfos returns the embedded WGSL module for both stages.
func WGSLInfos() []Info {
	return []Info{
		{Stage: Vertex, Path: BuiltinPrefix + "trans.wgsl"},
		{Stage: Fragment, Path: BuiltinPrefix + "trans.wgsl"},
	}
}

// Load reads the source of every stage.
func Load(infos []Info) ([]Source, error) {
	sources := make([]Source, 0, len(infos))
	for _, info := range infos {
		code, err := read(info.Path)
		if err != nil {
			return nil, fmt.Errorf("shader: load %s stage: %w", info.Stage, err)
		}
		sources = append(sources, Source{
			Stage:    info.Stage,
			Path:     info.Path,
			Language: LanguageOf(info.Path),
			Code:     string(code),
		})
	}
	return sources, nil
}

func read(p string) ([]byte, error) {
	if name, ok := strings.CutPrefix(p, BuiltinPrefix); ok {
		return builtin.ReadFile(path.Join("shaders", name))
	}
	return os.ReadFile(p)
}
