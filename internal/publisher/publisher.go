package publisher

import (
	"context"

	"github.com/mkobayashi/ai-daily/internal/report"
)

// Publisher delivers a rendered digest to some output destination.
type Publisher interface {
	Publish(ctx context.Context, digest *report.Digest) error
}
