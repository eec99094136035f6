package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/vantage/internal/config"
	"github.com/Faultbox/vantage/internal/engine/video"
)

// MainConstantSetter injects the presence/value constants for the
// globally configured rendering features. Sub-feature constants are
// emitted only when their parent feature is enabled.
type MainConstantSetter struct {
	cfg *config.ShaderConfig
}

// NewMainConstantSetter creates the built-in constant setter over the
// given feature flags.
func NewMainConstantSetter(cfg *config.ShaderConfig) *MainConstantSetter {
	return &MainConstantSetter{cfg: cfg}
}

// OnGenerate implements ConstantSetter.
func (m *MainConstantSetter) OnGenerate(name string, constants Constants) {
	cfg := m.cfg

	if cfg.ToneMapping {
		constants.SetInt("ENABLE_TONE_MAPPING", 1)
	} else {
		constants.SetInt("ENABLE_TONE_MAPPING", 0)
	}

	if cfg.DynamicShadows {
		constants.SetInt("ENABLE_DYNAMIC_SHADOWS", 1)
		if cfg.ColoredShadows {
			constants.SetInt("COLORED_SHADOWS", 1)
		}
		if cfg.PoissonFilter {
			constants.SetInt("POISSON_FILTER", 1)
		}
		if cfg.WaterReflections {
			constants.SetInt("ENABLE_WATER_REFLECTIONS", 1)
		}
		if cfg.TranslucentFoliage {
			constants.SetInt("ENABLE_TRANSLUCENT_FOLIAGE", 1)
		}
		constants.SetInt("SHADOW_FILTER", cfg.ShadowFilter)
		constants.SetFloat("SOFTSHADOWRADIUS", math32.Max(1, cfg.ShadowSoftRadius))
	}

	if cfg.Bloom {
		constants.SetInt("ENABLE_BLOOM", 1)
		if cfg.BloomDebug {
			constants.SetInt("ENABLE_BLOOM_DEBUG", 1)
		}
	}

	if cfg.AutoExposure {
		constants.SetInt("ENABLE_AUTO_EXPOSURE", 1)
	}

	if cfg.Antialiasing == "ssaa" {
		constants.SetInt("ENABLE_SSAA", 1)
		scale := cfg.SSAAScale
		if scale < 2 {
			scale = 2
		}
		constants.SetInt("SSAA_SCALE", scale)
	}

	if cfg.Dithering {
		constants.SetInt("ENABLE_DITHERING", 1)
	}

	if cfg.VolumetricLighting {
		constants.SetInt("VOLUMETRIC_LIGHT", 1)
	}
}

// MainUniformSetter pushes the basic uniforms required by almost every
// program: transform matrices, the fixed texture unit bindings, and the
// material color captured at the most recent material bind.
type MainUniformSetter struct {
	materialColor mgl32.Vec4
}

// OnSetMaterial implements UniformSetter.
func (m *MainUniformSetter) OnSetMaterial(mat video.Material) {
	m.materialColor = mat.Color
}

// OnSetUniforms implements UniformSetter.
func (m *MainUniformSetter) OnSetUniforms(services video.UniformServices) {
	driver := services.Driver()
	u := services.Uniforms()

	world := driver.Transform(video.TransformWorld)
	view := driver.Transform(video.TransformView)
	proj := driver.Transform(video.TransformProjection)

	worldView := view.Mul4(world)
	worldViewProj := proj.Mul4(worldView)

	u.SetMat4("mWorld", world)
	u.SetMat4("mWorldViewProj", worldViewProj)

	// The legacy tier reads these through gl_* builtins instead.
	if driver.FullyProgrammable() {
		u.SetMat4("mWorldView", worldView)
		u.SetMat4("mTexture", driver.Transform(video.TransformTexture0))
	}

	u.SetInt("texture0", 0)
	u.SetInt("texture1", 1)
	u.SetInt("texture2", 2)
	u.SetInt("texture3", 3)

	u.SetVec4("materialColor", m.materialColor)
}

// MainUniformSetterFactory creates a MainUniformSetter per program.
type MainUniformSetterFactory struct{}

// Create implements UniformSetterFactory.
func (MainUniformSetterFactory) Create() UniformSetter {
	return &MainUniformSetter{
		materialColor: mgl32.Vec4{1, 1, 1, 1},
	}
}
