package video

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformCache caches uniform locations for one program to avoid
// repeated gl.GetUniformLocation calls. Not safe for concurrent use;
// uniforms are uploaded from the render thread only.
type UniformCache struct {
	program   uint32
	locations map[string]int32
}

// NewUniformCache creates a uniform cache for a shader program.
func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		program:   program,
		locations: make(map[string]int32),
	}
}

// Location returns the cached uniform location, fetching it on first use.
// Returns -1 for unknown or inactive uniforms.
func (uc *UniformCache) Location(name string) int32 {
	if loc, ok := uc.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

// SetInt sets an int uniform. Unknown uniforms are ignored.
func (uc *UniformCache) SetInt(name string, v int32) {
	if loc := uc.Location(name); loc != -1 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform. Unknown uniforms are ignored.
func (uc *UniformCache) SetFloat(name string, v float32) {
	if loc := uc.Location(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec4 sets a vec4 uniform. Unknown uniforms are ignored.
func (uc *UniformCache) SetVec4(name string, v mgl32.Vec4) {
	if loc := uc.Location(name); loc != -1 {
		gl.Uniform4f(loc, v.X(), v.Y(), v.Z(), v.W())
	}
}

// SetMat4 sets a mat4 uniform. Unknown uniforms are ignored.
func (uc *UniformCache) SetMat4(name string, m mgl32.Mat4) {
	if loc := uc.Location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}
