package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkobayashi/ai-daily/internal/report"
)

// StdoutPublisher prints the rendered markdown to stdout.
type StdoutPublisher struct{}

func NewStdoutPublisher() *StdoutPublisher {
	return &StdoutPublisher{}
}

func (p *StdoutPublisher) Publish(_ context.Context, digest *report.Digest) error {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("AI Daily Digest — %s\n", digest.Date.Format("2006-01-02 15:04"))
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println()
	fmt.Println(digest.Markdown)
	return nil
}
