package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/windmill"
)

// Program is a validated set of stages with their reflected symbols.
//
// Backends that link programs themselves (OpenGL) still build a Program
// first so that missing symbols are reported before any GPU object exists.
type Program struct {
	Language Language
	Sources  []Source
	Symbols  Symbols

	// SPIRV holds the compiled words of each distinct WGSL source, keyed by path.
	SPIRV map[string][]uint32
}

// NewProgram validates sources as one program: both stages present, one
// language, and for WGSL a successful compile of every distinct module.
func NewProgram(sources []Source) (*Program, error) {
	var hasVertex, hasFragment bool
	p := &Program{
		Sources: sources,
		Symbols: Symbols{Uniforms: make(map[string]string)},
	}

	for i, src := range sources {
		if i == 0 {
			p.Language = src.Language
		} else if src.Language != p.Language {
			return nil, fmt.Errorf("%w: %s is %s, %s is %s",
				ErrMixedLanguage, sources[0].Path, p.Language, src.Path, src.Language)
		}
		switch src.Stage {
		case Vertex:
			hasVertex = true
		case Fragment:
			hasFragment = true
		}
		p.Symbols.merge(Reflect(src))
	}
	if !hasVertex {
		return nil, fmt.Errorf("%w: vertex", ErrStage)
	}
	if !hasFragment {
		return nil, fmt.Errorf("%w: fragment", ErrStage)
	}

	if p.Language == WGSL {
		p.SPIRV = make(map[string][]uint32)
		for _, src := range sources {
			if _, done := p.SPIRV[src.Path]; done {
				continue
			}
			words, err := CompileToSPIRV(src.Code)
			if err != nil {
				return nil, fmt.Errorf("shader: %s: %w", src.Path, err)
			}
			p.SPIRV[src.Path] = words
			windmill.Logger().Debug("shader: compiled WGSL", "path", src.Path, "words", len(words))
		}
	}

	return p, nil
}

// LoadProgram loads infos and builds a program from them.
func LoadProgram(infos []Info) (*Program, error) {
	sources, err := Load(infos)
	if err != nil {
		return nil, err
	}
	return NewProgram(sources)
}

// Require checks that every named attribute and uniform is declared.
func (p *Program) Require(attrs, uniforms []string) error {
	for _, name := range attrs {
		if _, ok := p.Symbols.Attribute(name); !ok {
			return fmt.Errorf("%w: attribute %q not declared by %s", ErrMissingSymbol, name, p.paths())
		}
	}
	for _, name := range uniforms {
		if _, ok := p.Symbols.Uniforms[name]; !ok {
			return fmt.Errorf("%w: uniform %q not declared by %s", ErrMissingSymbol, name, p.paths())
		}
	}
	return nil
}

func (p *Program) paths() string {
	paths := make([]string, 0, len(p.Sources))
	for _, src := range p.Sources {
		paths = append(paths, src.Path)
	}
	return strings.Join(paths, ", ")
}

// Locations are the resolved bindings of the transform program.
type Locations struct {
	Position uint32
	Color    uint32

	// Model is the uniform location, or the binding index for WGSL.
	Model int32
}

// Locations resolves the scene's symbols. Attributes without an explicit
// location are numbered in declaration order, as a linker without layout
// qualifiers is free to do.
func (p *Program) Locations() (Locations, error) {
	if err := p.Require([]string{AttrPosition, AttrColor}, []string{UniformModel}); err != nil {
		return Locations{}, err
	}

	resolve := func(name string) uint32 {
		for i, a := range p.Symbols.Attributes {
			if a.Name == name {
				if a.Location >= 0 {
					return uint32(a.Location)
				}
				return uint32(i)
			}
		}
		return 0
	}

	return Locations{
		Position: resolve(AttrPosition),
		Color:    resolve(AttrColor),
		Model:    0,
	}, nil
}

// Vertex buffer strides in bytes.
const (
	positionStride = 2 * 4
	colorStride    = 4 * 4
)

// VertexLayouts describes the two non-interleaved vertex buffers the scene
// binds: buffer 0 holds float32x2 positions, buffer 1 float32x4 colors.
func (l Locations) VertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: positionStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: l.Position},
			},
		},
		{
			ArrayStride: colorStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: l.Color},
			},
		},
	}
}

// Components returns the float count of a vertex format the scene uses,
// or 0 for any other format.
func Components(f gputypes.VertexFormat) int32 {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 0
	}
}
