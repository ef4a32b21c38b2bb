package main

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/internal/config"
	"github.com/Faultbox/siliconia/internal/engine/camera"
	"github.com/Faultbox/siliconia/internal/engine/debug"
	"github.com/Faultbox/siliconia/internal/engine/input"
	"github.com/Faultbox/siliconia/internal/engine/renderer"
	"github.com/Faultbox/siliconia/internal/engine/window"
	"github.com/Faultbox/siliconia/internal/logger"
	"github.com/Faultbox/siliconia/internal/terrain"
)

func cmdView(cfg *config.Config) error {
	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	meshes, err := s.meshes(cfg)
	if err != nil {
		return err
	}
	cellSize := float32(s.mosaic.CellSize())

	win, err := window.New(window.Config{
		Title:      fmt.Sprintf("Siliconia - %s", cfg.Data.TileDir),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	width, height := win.Size()
	r, err := renderer.New(renderer.Config{Width: width, Height: height, CellSize: cellSize})
	if err != nil {
		return err
	}
	defer r.Close()

	for _, m := range meshes {
		r.Upload(m)
	}

	cam := camera.NewOrbitCamera()
	lo, hi := worldBounds(meshes, cellSize)
	cam.FitToBounds(lo, hi)

	in := input.New()
	shots, err := debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "siliconia", cfg.Graphics.ScreenshotFormat)
	if err != nil {
		return err
	}
	wantShot := false
	frames := 0
	last := time.Now()

	logger.Info("viewer running", zap.Int("meshes", len(meshes)))
	for {
		if in.Update() {
			break
		}
		for _, e := range in.Events() {
			switch e.Type {
			case input.EventWindowResize:
				r.Resize(e.Width, e.Height)
			case input.EventDrag:
				cam.HandleDrag(e.DX, e.DY)
			case input.EventWheel:
				cam.HandleZoom(e.DY)
			case input.EventKeyDown:
				if e.Key == sdl.SCANCODE_F12 {
					wantShot = true
				}
			}
		}

		r.Begin()
		r.Draw(cam.ViewMatrix(), cam.ProjectionMatrix(win.Aspect()))
		if wantShot {
			wantShot = false
			pixels, w, h := r.ReadPixels()
			if path, err := shots.CaptureFromPixels(pixels, w, h); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}
		win.SwapBuffers()

		frames++
		if now := time.Now(); now.Sub(last) >= time.Second {
			win.SetTitle(fmt.Sprintf("Siliconia - %s (%d fps)", cfg.Data.TileDir, frames))
			frames = 0
			last = now
		}
	}

	logger.Info("viewer closed")
	return nil
}

// worldBounds returns the box around every mesh after placement.
func worldBounds(meshes []*terrain.Mesh, cellSize float32) (mgl32.Vec3, mgl32.Vec3) {
	lo := mgl32.Vec3{1e10, 1e10, 1e10}
	hi := mgl32.Vec3{-1e10, -1e10, -1e10}
	for _, m := range meshes {
		model := m.Model(cellSize)
		for _, p := range [][3]float32{m.Bounds.Min, m.Bounds.Max} {
			w := model.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
			for i := range 3 {
				lo[i] = min(lo[i], w[i])
				hi[i] = max(hi[i], w[i])
			}
		}
	}
	if len(meshes) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return lo, hi
}
