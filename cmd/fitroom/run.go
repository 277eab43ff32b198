package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/fitroom/internal/config"
	"github.com/taigrr/fitroom/internal/logger"
	"github.com/taigrr/fitroom/internal/remote"
	"github.com/taigrr/fitroom/pkg/render"
	"github.com/taigrr/fitroom/pkg/viewer"
	"github.com/taigrr/fitroom/pkg/wardrobe"
	"go.uber.org/zap"
)

// frameView draws the framebuffer with the HUD on top.
type frameView struct {
	fb   *render.Framebuffer
	hud  *HUD
	info hudInfo
}

func (f frameView) Draw(scr uv.Screen, area uv.Rectangle) {
	f.fb.Draw(scr, area)
	if f.hud.Show {
		f.hud.Draw(scr, area, f.info)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Console writes would corrupt the alt screen, so log to the file only
	fileCfg := logger.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
	if err := logger.Init(cfg.Logging.Level, logger.Output{File: fileCfg}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Named("fitroom")

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	session, err := viewer.New(cfg, viewer.WithSize(width, height*2))
	if err != nil {
		return err
	}
	defer session.Close()

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	var srv *remote.Server
	if cfg.Remote.Listen != "" {
		srv = remote.New(func(id string) {
			session.Post(func() {
				if err := session.Activate(id); err != nil {
					log.Warn("remote activation", zap.Error(err))
				}
			})
		})
		session.Wardrobe.OnChange(srv.Broadcast)
		for _, ev := range session.Wardrobe.Snapshot() {
			srv.Broadcast(ev)
		}
		go func() {
			if err := srv.ListenAndServe(cfg.Remote.Listen); err != nil {
				log.Error("remote server", zap.Error(err))
			}
		}()
	}

	session.Start()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hud := NewHUD(cfg.Viewer.ShowHUD)
	managers := session.Wardrobe.Managers()

	// Event handler. Anything touching the session is posted so it runs on
	// the frame loop goroutine.
	go func() {
		var mouseDown bool
		var lastMouseX, lastMouseY int

		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				w, h := ev.Width, ev.Height
				session.Post(func() {
					term.Erase()
					term.Resize(w, h)
					if err := session.Resize(w, h); err != nil {
						log.Debug("resize skipped", zap.Error(err))
					}
				})

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					cancel()
					return
				}
				if m := matchGarment(managers, ev); m != nil {
					session.Post(m.Activate)
					continue
				}
				switch {
				case ev.MatchString("w"):
					session.Post(func() { session.Renderer.Wireframe = !session.Renderer.Wireframe })
				case ev.MatchString("b"):
					session.Post(func() { session.Renderer.ShowBounds = !session.Renderer.ShowBounds })
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					session.Post(func() { hud.Show = !hud.Show })
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					// One cell is one pixel wide and two pixels tall
					dx := float64(ev.X - lastMouseX)
					dy := float64(ev.Y-lastMouseY) * 2
					lastMouseX, lastMouseY = ev.X, ev.Y
					session.Post(func() {
						session.Controls.Rotate(dx, dy, session.Renderer.Height())
					})
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					session.Post(func() { session.Controls.Dolly(1) })
				case uv.MouseWheelDown:
					session.Post(func() { session.Controls.Dolly(-1) })
				}
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		if srv != nil {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
			defer stop()
			srv.Shutdown(shutdownCtx)
		}
	}

	// Main loop
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Viewer.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case <-ticker.C:
		}

		session.Frame()
		hud.UpdateFPS()

		term.Draw(frameView{
			fb:  session.Renderer.Framebuffer(),
			hud: hud,
			info: hudInfo{
				Title:     "fitroom",
				Triangles: session.Scene.TriangleCount(),
				Garments:  managers,
				Wireframe: session.Renderer.Wireframe,
				Bounds:    session.Renderer.ShowBounds,
				Remote:    cfg.Remote.Listen,
			},
		})
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}
	}
}

// matchGarment returns the garment bound to the pressed key.
func matchGarment(managers []*wardrobe.Manager, ev uv.KeyPressEvent) *wardrobe.Manager {
	for _, m := range managers {
		if len(m.Garment.Keys) > 0 && ev.MatchString(m.Garment.Keys...) {
			return m
		}
	}
	return nil
}
