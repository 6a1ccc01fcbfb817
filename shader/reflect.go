package shader

import (
	"regexp"
	"strconv"
)

// Attribute is a vertex input declared by a vertex stage.
type Attribute struct {
	Name string
	Type string

	// Location is the declared location, or -1 when the source leaves it to the linker.
	Location int
}

// Symbols are the vertex inputs and uniforms a program declares.
type Symbols struct {
	Attributes []Attribute

	// Uniforms maps uniform names to their declared types.
	Uniforms map[string]string
}

// Attribute returns the named vertex input.
func (s Symbols) Attribute(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

	glslIn      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+(\w+)\s+(\w+)\s*;`)
	glslUniform = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(\w+)\s+(\w+)\s*;`)

	wgslVertexFn = regexp.MustCompile(`@vertex\s+fn\s+\w+\s*\(`)
	wgslStruct   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	wgslLocation = regexp.MustCompile(`@location\(\s*(\d+)\s*\)\s*(\w+)\s*:\s*([\w<>]+)`)
	wgslParam    = regexp.MustCompile(`^\s*\w+\s*:\s*(\w+)\s*$`)
	wgslUniform  = regexp.MustCompile(`var<uniform>\s+(\w+)\s*:\s*([\w<>]+)`)
)

// Reflect extracts the vertex inputs (vertex stage only) and uniforms of one source.
func Reflect(src Source) Symbols {
	code := blockComment.ReplaceAllString(src.Code, "")
	code = lineComment.ReplaceAllString(code, "")

	syms := Symbols{Uniforms: make(map[string]string)}
	if src.Language == WGSL {
		reflectWGSL(code, src.Stage, &syms)
	} else {
		reflectGLSL(code, src.Stage, &syms)
	}
	return syms
}

func reflectGLSL(code string, stage Stage, syms *Symbols) {
	if stage == Vertex {
		for _, m := range glslIn.FindAllStringSubmatch(code, -1) {
			syms.Attributes = append(syms.Attributes, Attribute{Name: m[3], Type: m[2], Location: location(m[1])})
		}
	}
	for _, m := range glslUniform.FindAllStringSubmatch(code, -1) {
		syms.Uniforms[m[2]] = m[1]
	}
}

func reflectWGSL(code string, stage Stage, syms *Symbols) {
	if stage == Vertex {
		if params, ok := vertexParams(code); ok {
			if !wgslLocation.MatchString(params) {
				// A single struct parameter: its fields are the inputs.
				if p := wgslParam.FindStringSubmatch(params); p != nil {
					for _, st := range wgslStruct.FindAllStringSubmatch(code, -1) {
						if st[1] == p[1] {
							params = st[2]
							break
						}
					}
				}
			}
			for _, m := range wgslLocation.FindAllStringSubmatch(params, -1) {
				syms.Attributes = append(syms.Attributes, Attribute{Name: m[2], Type: m[3], Location: location(m[1])})
			}
		}
	}
	for _, m := range wgslUniform.FindAllStringSubmatch(code, -1) {
		syms.Uniforms[m[1]] = m[2]
	}
}

// vertexParams returns the parameter list of the WGSL vertex entry point,
// up to the parenthesis that closes it.
func vertexParams(code string) (string, bool) {
	loc := wgslVertexFn.FindStringIndex(code)
	if loc == nil {
		return "", false
	}
	depth := 1
	for i := loc[1]; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return code[loc[1]:i], true
			}
		}
	}
	return "", false
}

func location(s string) int {
	if s == "" {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// merge adds other's symbols to s, keeping the first declaration of a name.
func (s *Symbols) merge(other Symbols) {
	for _, a := range other.Attributes {
		if _, ok := s.Attribute(a.Name); !ok {
			s.Attributes = append(s.Attributes, a)
		}
	}
	for name, typ := range other.Uniforms {
		if _, ok := s.Uniforms[name]; !ok {
			s.Uniforms[name] = typ
		}
	}
}
