package termview

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
	"github.com/rmdl/go-diorama-raytracer/pkg/renderer"
	"github.com/rmdl/go-diorama-raytracer/pkg/scene"
)

// Impulse strengths per key press, tuned for the spring decay below
const (
	orbitImpulse = 0.045
	zoomImpulse  = 0.30
	panImpulse   = 0.12
)

// motionAxis tracks one velocity component decayed toward zero by a
// critically damped spring, so camera motion eases out instead of
// stopping dead when a key is released.
type motionAxis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

// newMotionAxis creates an axis; frequency 4.0 with damping 1.0 gives
// moderate, overshoot-free deceleration
func newMotionAxis(fps int) motionAxis {
	return motionAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// step returns the current velocity and decays it toward zero
func (a *motionAxis) step() float64 {
	v := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return v
}

// active reports whether the axis still carries meaningful velocity
func (a *motionAxis) active() bool {
	return a.velocity > 1e-4 || a.velocity < -1e-4
}

// Viewer runs the interactive render loop: render a frame, present
// it, apply buffered camera motion, repeat. Camera mutations happen
// strictly between frames, so render workers never race a moving
// camera.
type Viewer struct {
	scene    *scene.Scene
	renderer *renderer.Renderer
	term     *Terminal
	fps      int

	yaw   motionAxis
	pitch motionAxis
	zoom  motionAxis
	panX  motionAxis
	panY  motionAxis
}

// NewViewer creates a viewer over a scene and its camera
func NewViewer(s *scene.Scene, camera *renderer.Camera, fov float64, fps int) (*Viewer, error) {
	if fps <= 0 {
		fps = 30
	}
	term, err := OpenTerminal()
	if err != nil {
		return nil, err
	}

	return &Viewer{
		scene:    s,
		renderer: renderer.NewRenderer(s, camera, fov, 0),
		term:     term,
		fps:      fps,
		yaw:      newMotionAxis(fps),
		pitch:    newMotionAxis(fps),
		zoom:     newMotionAxis(fps),
		panX:     newMotionAxis(fps),
		panY:     newMotionAxis(fps),
	}, nil
}

// Run drives the viewer until Esc, Ctrl+C or a signal. It restores
// the terminal before returning.
func (v *Viewer) Run() error {
	defer v.term.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go v.handleEvents(ctx, cancel)

	width, height := v.term.FramebufferSize()
	fb := renderer.NewFramebuffer(width, height)
	frameDuration := time.Second / time.Duration(v.fps)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()

		stats := v.renderer.Render(fb)
		v.term.Status(fmt.Sprintf(" %s | %d primitives | arrows orbit/zoom, wasd/qe move, esc quit",
			stats.String(), v.scene.PrimitiveCount()))
		if err := v.term.Present(fb); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}

		// Framebuffer tracks terminal resizes between frames
		if w, h := v.term.FramebufferSize(); w != fb.Width || h != fb.Height {
			fb = renderer.NewFramebuffer(w, h)
		}

		v.applyMotion()

		if elapsed := time.Since(frameStart); elapsed < frameDuration {
			time.Sleep(frameDuration - elapsed)
		}
	}
}

// applyMotion steps every spring and feeds the velocities into the
// camera, between frames
func (v *Viewer) applyMotion() {
	camera := v.renderer.Camera()
	if v.yaw.active() || v.pitch.active() {
		camera.Orbit(v.yaw.step(), v.pitch.step())
	}
	if v.zoom.active() {
		camera.Zoom(v.zoom.step())
	}
	if v.panX.active() || v.panY.active() {
		camera.Move(core.NewVec3(v.panX.step(), v.panY.step(), 0))
	}
}

// handleEvents translates terminal input into motion impulses
func (v *Viewer) handleEvents(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-v.term.Events():
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				v.term.HandleResize(ev.Width, ev.Height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("left"):
					v.yaw.velocity -= orbitImpulse
				case ev.MatchString("right"):
					v.yaw.velocity += orbitImpulse
				case ev.MatchString("w"):
					v.pitch.velocity += orbitImpulse
				case ev.MatchString("s"):
					v.pitch.velocity -= orbitImpulse
				case ev.MatchString("up"):
					v.zoom.velocity += zoomImpulse
				case ev.MatchString("down"):
					v.zoom.velocity -= zoomImpulse
				case ev.MatchString("a"):
					v.panX.velocity -= panImpulse
				case ev.MatchString("d"):
					v.panX.velocity += panImpulse
				case ev.MatchString("q"):
					v.panY.velocity += panImpulse
				case ev.MatchString("e"):
					v.panY.velocity -= panImpulse
				}
			}
		}
	}
}
