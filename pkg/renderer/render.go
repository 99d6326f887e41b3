package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for tiled rendering
type RenderConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = sequential sweep)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Number of tiles finished so far, including this one
	TotalTiles int // Total number of tiles in the image
}

// Renderer drives a full render of a scene across a worker pool
type Renderer struct {
	scene         *scene.Scene
	width, height int
	config        RenderConfig
	tiles         []*Tile
	raytracer     *Raytracer
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewRenderer creates a new renderer. A nil logger discards output.
func NewRenderer(s *scene.Scene, config RenderConfig, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = nopLogger{}
	}

	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	raytracer := NewRaytracer(s)

	return &Renderer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		tiles:      NewTileGrid(width, height, config.TileSize),
		raytracer:  raytracer,
		workerPool: NewWorkerPool(raytracer, config.NumWorkers),
		logger:     logger,
	}
}

// Render renders every pixel of the scene. The frame buffer is only returned
// once all tiles are complete. tileCallback may be nil.
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*FrameBuffer, RenderStats, error) {
	startTime := time.Now()
	fb := NewFrameBuffer(r.width, r.height)

	r.logger.Printf("Rendering %dx%d with %d tiles (using %d workers)...\n",
		r.width, r.height, len(r.tiles), r.workerPool.GetNumWorkers())

	var stats RenderStats
	finished := 0
	err := r.workerPool.Run(ctx, r.tiles, fb, func(result TileResult) {
		stats.merge(result.Stats)
		finished++

		if tileCallback != nil {
			tile := r.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / r.config.TileSize,
				TileY:      tile.Bounds.Min.Y / r.config.TileSize,
				TileImage:  fb.SubImage(tile.Bounds),
				TileNumber: finished,
				TotalTiles: len(r.tiles),
			})
		}
	})
	if err != nil {
		r.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", finished, len(r.tiles), err)
		return nil, RenderStats{}, err
	}

	stats.MeanLuminance, stats.LuminanceStdDev = LuminanceStats(fb.Pixels)
	stats.Duration = time.Since(startTime)

	r.logger.Printf("Render completed in %v (%d lit, %d shadowed, %d background pixels)\n",
		stats.Duration, stats.HitPixels, stats.ShadowedPixels, stats.BackgroundPixels)

	return fb, stats, nil
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
