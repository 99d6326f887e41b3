package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int          // Index into the tile list
	Frame  *FrameBuffer // Shared frame buffer to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tiles in parallel
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID        int
	raytracer *Raytracer
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		raytracer:  raytracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile into fb and calls onResult once per finished tile.
// onResult is always called from the calling goroutine. Run returns the
// context error if rendering was cancelled before all tiles finished.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, fb *FrameBuffer, onResult func(TileResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan TileTask)
	resultQueue := make(chan TileResult, len(tiles))

	g.Go(func() error {
		defer close(taskQueue)
		for i, tile := range tiles {
			select {
			case taskQueue <- TileTask{Tile: tile, TaskID: i, Frame: fb}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		worker := &Worker{ID: i, raytracer: wp.raytracer}
		g.Go(func() error {
			return worker.run(ctx, taskQueue, resultQueue)
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(resultQueue)
	}()

	for result := range resultQueue {
		if onResult != nil {
			onResult(result)
		}
	}
	return <-errc
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, taskQueue <-chan TileTask, resultQueue chan<- TileResult) error {
	for task := range taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Tiles have non-overlapping bounds, so writing the shared frame buffer is safe
		stats := w.raytracer.RenderBounds(task.Tile.Bounds, task.Frame)
		resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
	return nil
}
