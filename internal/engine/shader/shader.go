// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrEmptySource is returned when a shader stage has no source text.
var ErrEmptySource = errors.New("empty shader source")

// Source is the GLSL text of a vertex/fragment program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Files returns the file names Load reads for a program called name.
func Files(name string) (vertex, fragment string) {
	return name + ".vert", name + ".frag"
}

// Load reads name.vert and name.frag from fsys.
func Load(fsys fs.FS, name string) (Source, error) {
	vertFile, fragFile := Files(name)

	vert, err := fs.ReadFile(fsys, vertFile)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %w", vertFile, err)
	}
	frag, err := fs.ReadFile(fsys, fragFile)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %w", fragFile, err)
	}

	src := Source{Name: name, Vertex: string(vert), Fragment: string(frag)}
	if err := src.Validate(); err != nil {
		return Source{}, err
	}
	return src, nil
}

// Validate checks that both stages have source text.
func (s Source) Validate() error {
	if len(s.Vertex) == 0 {
		return fmt.Errorf("%w: %s vertex stage", ErrEmptySource, s.Name)
	}
	if len(s.Fragment) == 0 {
		return fmt.Errorf("%w: %s fragment stage", ErrEmptySource, s.Name)
	}
	return nil
}

// Compile compiles and links s.
func Compile(s Source) (uint32, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	program, err := CompileProgram(s.Vertex, s.Fragment)
	if err != nil {
		return 0, fmt.Errorf("program %s: %w", s.Name, err)
	}
	return program, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log[:logLen]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log[:logLen]))
	}

	return shader, nil
}

// Uniform returns the uniform location for the given name, or -1 if the
// uniform is not found or was optimized out.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
