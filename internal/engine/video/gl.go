package video

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/vantage/internal/logger"
)

// GLDriver implements Driver on top of desktop OpenGL.
// IMPORTANT: create and use only on the thread owning the GL context.
type GLDriver struct {
	renderer string
	version  string

	transforms [4]mgl32.Mat4

	// Per-program callbacks, fired from UseProgram and SetMaterial.
	callbacks map[ProgramID]ProgramCallback
	uniforms  map[ProgramID]*UniformCache
}

// NewGLDriver initializes OpenGL and returns a driver bound to the
// current context.
func NewGLDriver() (*GLDriver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &GLDriver{
		renderer:  gl.GoStr(gl.GetString(gl.RENDERER)),
		version:   gl.GoStr(gl.GetString(gl.VERSION)),
		callbacks: make(map[ProgramID]ProgramCallback),
		uniforms:  make(map[ProgramID]*UniformCache),
	}
	for i := range d.transforms {
		d.transforms[i] = mgl32.Ident4()
	}

	logger.Info("OpenGL initialized",
		zap.String("version", d.version),
		zap.String("renderer", d.renderer),
	)

	return d, nil
}

// Type reports the driver backend; a core-profile context has no fixed
// function pipeline, so this is always DriverOpenGL3.
func (d *GLDriver) Type() DriverType { return DriverOpenGL3 }

// Name returns the GL_RENDERER string.
func (d *GLDriver) Name() string { return d.renderer }

// SupportsShaders is always true on a core profile.
func (d *GLDriver) SupportsShaders() bool { return true }

// FullyProgrammable is always true on a core profile.
func (d *GLDriver) FullyProgrammable() bool { return true }

// SetTransform updates a matrix on the transform stack.
func (d *GLDriver) SetTransform(kind TransformKind, m mgl32.Mat4) {
	d.transforms[kind] = m
}

// Transform returns a matrix from the transform stack.
func (d *GLDriver) Transform(kind TransformKind) mgl32.Mat4 {
	return d.transforms[kind]
}

// CompileProgram compiles and links the given stages into a program and
// registers the callback for it.
func (d *GLDriver) CompileProgram(stages StageSources, label string, cb ProgramCallback) (ProgramID, error) {
	vert, err := compileStage(stages.Vertex, gl.VERTEX_SHADER, "vertex", label)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(stages.Fragment, gl.FRAGMENT_SHADER, "fragment", label)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)

	if stages.Geometry != "" {
		geom, err := compileStage(stages.Geometry, gl.GEOMETRY_SHADER, "geometry", label)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		defer gl.DeleteShader(geom)
		gl.AttachShader(program, geom)
	}

	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &infoLog[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link %s: %s", label, strings.TrimRight(string(infoLog), "\x00\n"))
	}

	id := ProgramID(program)
	if cb != nil {
		d.callbacks[id] = cb
	}
	d.uniforms[id] = NewUniformCache(program)
	return id, nil
}

// DeleteProgram releases a compiled program and its callback.
func (d *GLDriver) DeleteProgram(id ProgramID) {
	if id == 0 {
		return
	}
	gl.DeleteProgram(uint32(id))
	delete(d.callbacks, id)
	delete(d.uniforms, id)
}

// SetMaterial forwards per-material state to the program's callback.
// Call before UseProgram when the bound material changes.
func (d *GLDriver) SetMaterial(id ProgramID, mat Material) {
	if cb := d.callbacks[id]; cb != nil {
		cb.OnSetMaterial(mat)
	}
}

// UseProgram binds a program and fires its callback so uniforms get
// pushed for the upcoming draw. Binding 0 selects the fixed function
// pipeline (a no-op program on core profiles).
func (d *GLDriver) UseProgram(id ProgramID) {
	gl.UseProgram(uint32(id))
	if cb := d.callbacks[id]; cb != nil {
		cb.OnSetUniforms(&glServices{driver: d, uniforms: d.uniforms[id]})
	}
}

// glServices implements UniformServices for a bound program.
type glServices struct {
	driver   *GLDriver
	uniforms *UniformCache
}

func (s *glServices) Driver() Driver          { return s.driver }
func (s *glServices) Uniforms() *UniformCache { return s.uniforms }

// compileStage compiles a single shader stage.
func compileStage(source string, stageType uint32, stage, label string) (uint32, error) {
	shader := gl.CreateShader(stageType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &infoLog[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s stage of %s: %s", stage, label,
			strings.TrimRight(string(infoLog), "\x00\n"))
	}

	return shader, nil
}
