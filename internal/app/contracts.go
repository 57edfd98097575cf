package app

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=app

import (
	"context"

	"github.com/tendant/photo-days/internal/capture"
)

// CaptureResolver looks up the capture time of one file. Implementations
// must be safe for concurrent use and never fail: an undatable file comes
// back as an unresolved record.
type CaptureResolver interface {
	Resolve(ctx context.Context, path string) capture.Record
}
