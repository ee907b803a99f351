package contour

import (
	"errors"
	"fmt"

	"github.com/gogpu/contour/internal/parallel"
)

// Defaults for NewConfig and DefaultConfig.
const (
	// DefaultStep is the pixel distance between grid sample points.
	DefaultStep = 8

	// DefaultSigma is the intensity threshold separating foreground from background.
	DefaultSigma = 200

	// DefaultTargetWidth and DefaultTargetHeight bound the working image.
	// Larger sources are rescaled to exactly this size.
	DefaultTargetWidth  = 2048
	DefaultTargetHeight = 2048
)

// Configuration errors.
var (
	// ErrInvalidWorkers is returned when the worker count is below 1.
	ErrInvalidWorkers = errors.New("contour: worker count must be at least 1")

	// ErrInvalidStep is returned when the sampling step is below 1.
	ErrInvalidStep = errors.New("contour: step must be at least 1")

	// ErrInvalidTarget is returned when the target resolution cannot hold one cell.
	ErrInvalidTarget = errors.New("contour: invalid target resolution")

	// ErrInvalidSigma is returned when sigma is outside [0, 255].
	ErrInvalidSigma = errors.New("contour: sigma must be in [0, 255]")
)

// PartitionPolicy decides how rows and columns that do not divide evenly
// among the workers are handled.
type PartitionPolicy = parallel.Policy

// Partition policies.
const (
	// RemainderToLast hands the trailing extent%N rows (or columns) to the
	// last worker. Output is then identical for every worker count.
	RemainderToLast = parallel.RemainderToLast

	// FloorPartition gives each worker exactly extent/N rows (or columns).
	// The trailing extent%N are never sampled or marched; they keep their
	// zero value and a warning is logged.
	FloorPartition = parallel.Floor
)

// Config holds the pipeline parameters.
type Config struct {
	// Step is the sampling stride in pixels. Tiles must be Step x Step.
	Step int

	// Sigma is the threshold: a sample whose channel average is <= Sigma is
	// foreground (1), otherwise background (0).
	Sigma int

	// TargetWidth and TargetHeight are the working resolution used when the
	// source exceeds it in either dimension.
	TargetWidth  int
	TargetHeight int

	// Workers is the number of goroutines in the cohort.
	Workers int

	// Partition selects how uneven extents are split among workers.
	Partition PartitionPolicy

	// BeforeStage, when non-nil, is called by each worker right before it
	// performs the work of a stage. It runs on the worker's goroutine.
	BeforeStage func(worker int, stage Stage)
}

// DefaultConfig returns the default pipeline configuration with one worker.
func DefaultConfig() Config {
	return Config{
		Step:         DefaultStep,
		Sigma:        DefaultSigma,
		TargetWidth:  DefaultTargetWidth,
		TargetHeight: DefaultTargetHeight,
		Workers:      1,
		Partition:    RemainderToLast,
	}
}

// Option configures a Config.
//
// Example:
//
//	cfg := contour.NewConfig(contour.WithWorkers(8), contour.WithSigma(128))
type Option func(*Config)

// NewConfig returns DefaultConfig with the given options applied in order.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithStep sets the sampling stride.
func WithStep(step int) Option {
	return func(c *Config) {
		c.Step = step
	}
}

// WithSigma sets the foreground threshold.
func WithSigma(sigma int) Option {
	return func(c *Config) {
		c.Sigma = sigma
	}
}

// WithTarget sets the working resolution used for oversized sources.
func WithTarget(width, height int) Option {
	return func(c *Config) {
		c.TargetWidth = width
		c.TargetHeight = height
	}
}

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithPartition sets the partition policy.
func WithPartition(p PartitionPolicy) Option {
	return func(c *Config) {
		c.Partition = p
	}
}

// WithStageHook installs a per-worker callback run before each stage.
func WithStageHook(fn func(worker int, stage Stage)) Option {
	return func(c *Config) {
		c.BeforeStage = fn
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Step < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidStep, c.Step)
	}
	if c.Sigma < 0 || c.Sigma > 255 {
		return fmt.Errorf("%w: got %d", ErrInvalidSigma, c.Sigma)
	}
	if c.TargetWidth < max(c.Step, 2) || c.TargetHeight < max(c.Step, 2) {
		return fmt.Errorf("%w: %dx%d with step %d", ErrInvalidTarget, c.TargetWidth, c.TargetHeight, c.Step)
	}
	return nil
}
