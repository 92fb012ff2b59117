package renderer

import (
	"fmt"
	"time"
)

// FrameStats summarizes a single rendered frame
type FrameStats struct {
	Width    int
	Height   int
	Rays     int64         // Total rays cast, including recursion
	Duration time.Duration // Wall time for the frame
}

// FPS returns the frame rate this frame time sustains
func (s FrameStats) FPS() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return 1 / s.Duration.Seconds()
}

// RaysPerPixel returns the average number of rays cast per pixel
func (s FrameStats) RaysPerPixel() float64 {
	pixels := s.Width * s.Height
	if pixels == 0 {
		return 0
	}
	return float64(s.Rays) / float64(pixels)
}

// String formats the stats for a HUD or log line
func (s FrameStats) String() string {
	return fmt.Sprintf("%dx%d %.1f fps %.2f rays/px", s.Width, s.Height, s.FPS(), s.RaysPerPixel())
}
