package sequenceRepo

import "context"

// SequenceRepository hands out monotonically increasing ids per named sequence.
type SequenceRepository interface {
	// Next returns the next id of the sequence, starting at 1.
	Next(ctx context.Context, name string) (int64, error)
}
