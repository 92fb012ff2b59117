package renderer

import (
	"math"
	"time"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// defaultTileRows is the row-band height handed to each worker task
const defaultTileRows = 8

// Renderer maps framebuffer cells to camera-space rays and shades them.
// Scene state is read-only for the duration of a frame; camera
// mutations must happen between Render calls.
type Renderer struct {
	shader *Shader
	camera *Camera
	fov    float64 // Vertical field of view in radians
	pool   *WorkerPool
}

// NewRenderer creates a renderer over a scene and camera. A fov of 0
// falls back to pi/3; numWorkers <= 0 uses one worker per CPU.
func NewRenderer(scene Scene, camera *Camera, fov float64, numWorkers int) *Renderer {
	if fov <= 0 {
		fov = math.Pi / 3
	}
	return &Renderer{
		shader: NewShader(scene),
		camera: camera,
		fov:    fov,
		pool:   NewWorkerPool(numWorkers),
	}
}

// Camera returns the camera the renderer casts from
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render shades every pixel of the framebuffer in parallel and returns
// per-frame statistics once all workers have joined.
func (r *Renderer) Render(fb *Framebuffer) FrameStats {
	start := time.Now()
	r.shader.ResetStats()

	width := float64(fb.Width)
	height := float64(fb.Height)
	aspectRatio := width / height
	perspectiveScale := math.Tan(r.fov / 2)

	tiles := SplitRows(fb.Height, defaultTileRows)
	r.pool.Run(tiles, func(tile Tile) {
		for y := tile.MinY; y < tile.MaxY; y++ {
			for x := 0; x < fb.Width; x++ {
				// Map the pixel to screen space [-1, 1], correcting
				// for aspect ratio and field of view
				screenX := (2*float64(x)/width - 1) * aspectRatio * perspectiveScale
				screenY := (1 - 2*float64(y)/height) * perspectiveScale

				local := core.NewVec3(screenX, screenY, -1).Normalize()
				direction := r.camera.BasisChange(local)

				color := r.shader.CastRay(core.NewRay(r.camera.Eye, direction), 0)
				fb.SetPixel(x, y, PackColor(color))
			}
		}
	})

	return FrameStats{
		Width:    fb.Width,
		Height:   fb.Height,
		Rays:     r.shader.RayCount(),
		Duration: time.Since(start),
	}
}
