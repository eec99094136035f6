package shader

import "github.com/Faultbox/vantage/internal/engine/video"

// ConstantSetter contributes compile-time constants during generation.
// Setters run in registration order; a later setter may overwrite an
// earlier one's entry for the same name.
type ConstantSetter interface {
	OnGenerate(name string, constants Constants)
}

// UniformSetter pushes per-draw uniform values into the bound program.
// Implementations may cache program-specific state (uniform locations),
// so an instance must never be shared across programs.
type UniformSetter interface {
	// OnSetMaterial snapshots per-material state before uniforms are
	// pushed for a draw.
	OnSetMaterial(mat video.Material)
	// OnSetUniforms uploads uniform values for the upcoming draw.
	OnSetUniforms(services video.UniformServices)
}

// UniformSetterFactory creates one UniformSetter per compiled program.
type UniformSetterFactory interface {
	Create() UniformSetter
}

// Dispatcher fans renderer events out to the uniform setters of one
// compiled program. It is attached to the program at compile time.
type Dispatcher struct {
	setters []UniformSetter
}

func newDispatcher(factories []UniformSetterFactory) *Dispatcher {
	d := &Dispatcher{}
	for _, f := range factories {
		if setter := f.Create(); setter != nil {
			d.setters = append(d.setters, setter)
		}
	}
	return d
}

// OnSetMaterial implements video.ProgramCallback.
func (d *Dispatcher) OnSetMaterial(mat video.Material) {
	for _, s := range d.setters {
		s.OnSetMaterial(mat)
	}
}

// OnSetUniforms implements video.ProgramCallback.
func (d *Dispatcher) OnSetUniforms(services video.UniformServices) {
	for _, s := range d.setters {
		s.OnSetUniforms(services)
	}
}
