// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shader   ShaderConfig   `yaml:"shader"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ShaderConfig holds the rendering feature flags consumed during shader
// generation, plus the user override directory for shader sources.
type ShaderConfig struct {
	// OverrideDir is searched before the bundled assets when resolving
	// shader source files. Empty disables the override tier.
	OverrideDir string `yaml:"override_dir"`

	ToneMapping bool `yaml:"tone_mapping"`

	DynamicShadows     bool    `yaml:"dynamic_shadows"`
	ColoredShadows     bool    `yaml:"colored_shadows"`
	PoissonFilter      bool    `yaml:"poisson_filter"`
	WaterReflections   bool    `yaml:"water_reflections"`
	TranslucentFoliage bool    `yaml:"translucent_foliage"`
	ShadowFilter       int     `yaml:"shadow_filter"`
	ShadowSoftRadius   float32 `yaml:"shadow_soft_radius"`

	Bloom      bool `yaml:"bloom"`
	BloomDebug bool `yaml:"bloom_debug"`

	AutoExposure bool `yaml:"auto_exposure"`

	// Antialiasing selects the AA mode; "ssaa" enables supersampling
	// at SSAAScale.
	Antialiasing string `yaml:"antialiasing"`
	SSAAScale    int    `yaml:"ssaa_scale"`

	Dithering          bool `yaml:"dithering"`
	VolumetricLighting bool `yaml:"volumetric_lighting"`
}

// DataConfig holds asset file paths.
type DataConfig struct {
	AssetsDir string `yaml:"assets_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Shader: ShaderConfig{
			ToneMapping:      false,
			DynamicShadows:   false,
			ShadowFilter:     1,
			ShadowSoftRadius: 5.0,
			Antialiasing:     "none",
			SSAAScale:        2,
		},
		Data: DataConfig{
			AssetsDir: "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
