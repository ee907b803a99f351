package contour

// Stage identifies one step of the pipeline. Workers pass through the stages
// in order and meet at a barrier between consecutive stages.
type Stage uint8

const (
	// StageRescale writes the worker's rows of the rescaled working image.
	// It does no work when the source is used as the working image, but the
	// worker still waits at the barrier that ends it.
	StageRescale Stage = iota

	// StageSample writes the worker's rows (and bottom-edge columns) of the grid.
	StageSample

	// StageMarch stamps tiles for the worker's grid rows.
	StageMarch

	// StageDone is reached after the final barrier.
	StageDone
)

// String returns a string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageRescale:
		return "Rescale"
	case StageSample:
		return "Sample"
	case StageMarch:
		return "March"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}
