package contour

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	intImage "github.com/gogpu/contour/internal/image"
	"github.com/gogpu/contour/internal/march"
	"github.com/gogpu/contour/internal/parallel"
)

// Pipeline input errors.
var (
	// ErrImageTooSmall is returned when the working image is narrower or
	// shorter than one sampling step.
	ErrImageTooSmall = errors.New("contour: image too small")

	// ErrNilImage is returned when no source image is given.
	ErrNilImage = errors.New("contour: nil image")

	// ErrNilTiles is returned when no tile table is given.
	ErrNilTiles = errors.New("contour: nil tile table")
)

// Gap describes trailing indices of one stage that no worker owns.
// Gaps occur only with FloorPartition.
type Gap struct {
	// Stage is the stage whose partition leaves the gap.
	Stage Stage

	// Axis is "rows" or "columns".
	Axis string

	// Extent is the number of rows or columns being partitioned.
	Extent int

	// Dropped is how many trailing indices are never processed.
	Dropped int
}

// Result is the outcome of Run.
type Result struct {
	// Image is the working image with tiles stamped in. When Rescaled is
	// false it is the source image itself, modified in place.
	Image *Image

	// Grid is the binary sample grid the tiles were selected from.
	Grid *Grid

	// Rescaled reports whether a new target-sized working image was allocated.
	Rescaled bool

	// Uncovered lists the partition gaps of the run.
	Uncovered []Gap
}

// pipeline is the state shared by all workers of one run. Every field is
// set before the cohort starts and never reassigned; the buffers behind
// working and grid are written disjointly per stage.
type pipeline struct {
	cfg      Config
	src      *Image
	working  *Image
	grid     *Grid
	tiles    *TileTable
	sampler  march.Sampler
	rescale  bool
	barrier  *parallel.Barrier
	log      *slog.Logger
	cellRows int
	cellCols int
}

// worker is one member of the cohort.
type worker struct {
	id int
	p  *pipeline
}

// Run executes the rescale, sample and march stages on cfg.Workers
// goroutines and returns the rendered working image.
//
// If src fits within the target resolution it becomes the working image and
// is modified in place. Otherwise a new TargetWidth x TargetHeight image is
// allocated and src is left untouched.
func Run(src *Image, tiles *TileTable, cfg Config) (*Result, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if tiles == nil {
		return nil, ErrNilTiles
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tiles.FitsStep(cfg.Step); err != nil {
		return nil, fmt.Errorf("contour: %w", err)
	}

	log := Logger()

	working := src
	rescale := src.Width() > cfg.TargetWidth || src.Height() > cfg.TargetHeight
	if rescale {
		var err error
		working, err = intImage.NewImage(cfg.TargetWidth, cfg.TargetHeight)
		if err != nil {
			return nil, fmt.Errorf("contour: allocate working image: %w", err)
		}
	}
	log.Debug("rescale decision",
		"rescale", rescale,
		"src_width", src.Width(), "src_height", src.Height(),
		"width", working.Width(), "height", working.Height())

	if working.Width() < cfg.Step || working.Height() < cfg.Step {
		return nil, fmt.Errorf("%w: %dx%d with step %d",
			ErrImageTooSmall, working.Width(), working.Height(), cfg.Step)
	}

	grid := march.NewGridFor(working, cfg.Step)
	cellRows, cellCols := grid.Cells()
	log.Debug("grid allocated", "rows", cellRows+1, "cols", cellCols+1)

	cohort := parallel.NewCohort(cfg.Workers)
	p := &pipeline{
		cfg:      cfg,
		src:      src,
		working:  working,
		grid:     grid,
		tiles:    tiles,
		sampler:  march.Sampler{Step: cfg.Step, Sigma: cfg.Sigma},
		rescale:  rescale,
		barrier:  cohort.NewBarrier(),
		log:      log,
		cellRows: cellRows,
		cellCols: cellCols,
	}

	gaps := p.gaps()
	for _, g := range gaps {
		log.Warn("partition leaves trailing indices unassigned",
			"stage", g.Stage.String(), "axis", g.Axis,
			"extent", g.Extent, "workers", cfg.Workers, "dropped", g.Dropped)
	}

	log.Info("pipeline start",
		"workers", cfg.Workers, "partition", cfg.Partition.String(),
		"width", working.Width(), "height", working.Height(), "step", cfg.Step)
	start := time.Now()

	cohort.Run(func(id int) {
		w := worker{id: id, p: p}
		w.run()
	})

	log.Info("pipeline done", "elapsed", time.Since(start), "foreground", grid.Count())

	return &Result{
		Image:     working,
		Grid:      grid,
		Rescaled:  rescale,
		Uncovered: gaps,
	}, nil
}

// gaps computes the partition gaps of every stage for the configured policy.
func (p *pipeline) gaps() []Gap {
	n, policy := p.cfg.Workers, p.cfg.Partition

	var out []Gap
	add := func(stage Stage, axis string, extent int) {
		if d := parallel.Uncovered(extent, n, policy); d > 0 {
			out = append(out, Gap{Stage: stage, Axis: axis, Extent: extent, Dropped: d})
		}
	}

	if p.rescale {
		add(StageRescale, "rows", p.working.Height())
	}
	add(StageSample, "rows", p.cellRows)
	add(StageSample, "columns", p.cellCols)
	add(StageMarch, "rows", p.cellRows)
	return out
}

// split returns this worker's share of [0, extent).
func (w worker) split(extent int) parallel.Range {
	return parallel.Split(extent, w.p.cfg.Workers, w.id, w.p.cfg.Partition)
}

// run advances the worker through every stage, waiting at the barrier after
// each one. All workers wait the same number of times, including when the
// rescale stage has nothing to do.
func (w worker) run() {
	for stage := StageRescale; stage < StageDone; stage++ {
		if hook := w.p.cfg.BeforeStage; hook != nil {
			hook(w.id, stage)
		}
		w.p.log.Debug("stage start", "worker", w.id, "stage", stage.String())
		w.do(stage)
		w.p.barrier.Wait()
	}
}

// do performs the work of one stage on this worker's partition.
func (w worker) do(stage Stage) {
	p := w.p

	switch stage {
	case StageRescale:
		if !p.rescale {
			return
		}
		rows := w.split(p.working.Height())
		intImage.RescaleRows(p.working, p.src, rows.Start, rows.End)

	case StageSample:
		rows := w.split(p.cellRows)
		p.sampler.SampleRows(p.working, p.grid, rows.Start, rows.End)

		cols := w.split(p.cellCols)
		p.sampler.SampleBottom(p.working, p.grid, cols.Start, cols.End)

		if w.id == 0 {
			p.sampler.SampleCorner(p.grid)
		}

	case StageMarch:
		rows := w.split(p.cellRows)
		march.MarchRows(p.working, p.grid, p.tiles, p.cfg.Step, rows.Start, rows.End)
	}
}
