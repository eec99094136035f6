// Package main is the entry point for the vantage renderer demo. It
// brings up a window and GL context, builds the shader source, and
// requests the bundled "basic" shader.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/vantage/internal/config"
	"github.com/Faultbox/vantage/internal/engine/shader"
	"github.com/Faultbox/vantage/internal/engine/video"
	"github.com/Faultbox/vantage/internal/engine/window"
	"github.com/Faultbox/vantage/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Vantage",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	driver, err := video.NewGLDriver()
	if err != nil {
		return err
	}

	resolver := shader.NewResolver(cfg.Data.AssetsDir)
	resolver.SetOverrideDir(cfg.Shader.OverrideDir)

	src := shader.NewSource(driver, resolver, &cfg.Shader)
	defer src.Close()

	id, err := src.RequestMaterialShader("basic", shader.MaterialBasic, 0)
	if err != nil {
		return fmt.Errorf("core material shader: %w", err)
	}
	rec := src.Record(id)
	logger.Info("basic shader ready",
		zap.Uint32("id", id), zap.Uint32("program", uint32(rec.Program)))

	width, height := win.GetSize()
	aspect := float32(width) / float32(height)
	driver.SetTransform(video.TransformProjection,
		mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 1000))
	driver.SetTransform(video.TransformView,
		mgl32.LookAtV(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	for win.PollEvents() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		driver.SetMaterial(rec.Program, video.Material{Color: mgl32.Vec4{1, 1, 1, 1}})
		driver.UseProgram(rec.Program)

		win.SwapBuffers()
	}

	return nil
}
