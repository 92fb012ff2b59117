package renderer

import (
	"runtime"
	"sync"
)

// Tile is a horizontal band of framebuffer rows rendered as one task.
// Tiles never overlap, so workers write disjoint framebuffer regions.
type Tile struct {
	MinY, MaxY int // Row range [MinY, MaxY)
}

// WorkerPool fans tile tasks out across a fixed set of workers and
// joins before returning. Pixel evaluations are independent, so
// scheduling order does not affect the result.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool with the specified number of workers;
// zero or negative means one per CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the worker count
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders all tiles through the given function and blocks until
// every tile is done
func (wp *WorkerPool) Run(tiles []Tile, render func(Tile)) {
	tasks := make(chan Tile, len(tiles))
	for _, tile := range tiles {
		tasks <- tile
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range tasks {
				render(tile)
			}
		}()
	}
	wg.Wait()
}

// SplitRows divides height rows into tiles of at most tileRows rows each
func SplitRows(height, tileRows int) []Tile {
	if tileRows <= 0 {
		tileRows = 8
	}
	tiles := make([]Tile, 0, (height+tileRows-1)/tileRows)
	for y := 0; y < height; y += tileRows {
		end := y + tileRows
		if end > height {
			end = height
		}
		tiles = append(tiles, Tile{MinY: y, MaxY: end})
	}
	return tiles
}
