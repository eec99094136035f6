// Package video defines the GPU driver boundary used by the engine:
// driver capability queries, program compilation, the transform stack,
// and uniform upload.
package video

import "github.com/go-gl/mathgl/mgl32"

// DriverType identifies the video driver backing the renderer.
type DriverType int

const (
	// DriverNull is a headless driver that pretends to support
	// everything but compiles nothing.
	DriverNull DriverType = iota
	// DriverOpenGLLegacy is a fixed-function-era GL driver (GLSL 1.20).
	DriverOpenGLLegacy
	// DriverOpenGL3 is a core-profile desktop GL driver.
	DriverOpenGL3
	// DriverGLES2 is an OpenGL ES 2.0 driver.
	DriverGLES2
)

func (t DriverType) String() string {
	switch t {
	case DriverNull:
		return "null"
	case DriverOpenGLLegacy:
		return "opengl-legacy"
	case DriverOpenGL3:
		return "opengl3"
	case DriverGLES2:
		return "gles2"
	}
	return "unknown"
}

// BaseMaterial is the built-in blending/alpha mode a generated program
// extends.
type BaseMaterial int

const (
	// MaterialSolid renders opaque geometry.
	MaterialSolid BaseMaterial = iota
	// MaterialTransparentAlphaChannel blends using the texture alpha
	// channel.
	MaterialTransparentAlphaChannel
	// MaterialTransparentAlphaChannelRef discards fragments below an
	// alpha threshold.
	MaterialTransparentAlphaChannelRef
)

func (m BaseMaterial) String() string {
	switch m {
	case MaterialSolid:
		return "solid"
	case MaterialTransparentAlphaChannel:
		return "alpha"
	case MaterialTransparentAlphaChannelRef:
		return "alpha-ref"
	}
	return "unknown"
}

// ProgramID is an opaque handle to a compiled GPU program. 0 means
// "no program" (fixed function).
type ProgramID uint32

// Material carries the per-material state a program needs at bind time.
type Material struct {
	// Color is the material color parameter, RGBA in [0,1].
	Color mgl32.Vec4
}

// TransformKind selects a matrix from the driver's transform stack.
type TransformKind int

const (
	TransformWorld TransformKind = iota
	TransformView
	TransformProjection
	TransformTexture0
)

// StageSources holds the final assembled text for each pipeline stage.
// An empty Geometry omits the geometry stage.
type StageSources struct {
	Vertex   string
	Fragment string
	Geometry string
}

// ProgramCallback receives per-program events from the renderer:
// material binds and per-draw uniform pushes.
type ProgramCallback interface {
	OnSetMaterial(mat Material)
	OnSetUniforms(services UniformServices)
}

// UniformServices is what a ProgramCallback gets to work with while its
// program is bound.
type UniformServices interface {
	// Driver exposes driver state (capability tier, transforms).
	Driver() Driver
	// Uniforms is the location cache for the bound program.
	Uniforms() *UniformCache
}

// Driver is the GPU programming interface the shader subsystem consumes.
// Compilation and deletion must only be called from the thread owning
// the GL context.
type Driver interface {
	// Type reports the driver backend.
	Type() DriverType
	// Name returns the driver identity string (GL_RENDERER or
	// equivalent), used for vendor workarounds.
	Name() string
	// SupportsShaders reports whether programmable shading is
	// available at all.
	SupportsShaders() bool
	// FullyProgrammable reports whether the driver lacks a
	// fixed-function pipeline to fall back on (core GL3, GLES2).
	FullyProgrammable() bool
	// CompileProgram compiles and links the given stages. The callback
	// is retained for the program's lifetime and fired on material
	// bind and before each draw. The label identifies the program in
	// diagnostics.
	CompileProgram(stages StageSources, label string, cb ProgramCallback) (ProgramID, error)
	// DeleteProgram releases a compiled program. Deleting 0 is a no-op.
	DeleteProgram(id ProgramID)
	// Transform returns the given matrix from the transform stack.
	Transform(kind TransformKind) mgl32.Mat4
}
