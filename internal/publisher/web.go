package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/mkobayashi/ai-daily/internal/report"
)

// WebPublisher serves the latest digest as an HTML page over HTTP.
type WebPublisher struct {
	addr   string
	server *http.Server
	mu     sync.RWMutex
	latest *report.Digest
}

func NewWebPublisher(addr string) *WebPublisher {
	wp := &WebPublisher{addr: addr}
	mux := http.NewServeMux()
	mux.HandleFunc("/", wp.handleIndex)
	wp.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return wp
}

// Start begins serving HTTP in the background. Call Shutdown to stop.
func (wp *WebPublisher) Start() error {
	ln, err := net.Listen("tcp", wp.addr)
	if err != nil {
		return fmt.Errorf("web: failed to listen on %s: %w", wp.addr, err)
	}
	go func() {
		slog.Info("web publisher listening", "addr", wp.addr)
		if err := wp.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("web publisher error", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (wp *WebPublisher) Shutdown(ctx context.Context) error {
	return wp.server.Shutdown(ctx)
}

func (wp *WebPublisher) Publish(_ context.Context, digest *report.Digest) error {
	wp.mu.Lock()
	wp.latest = digest
	wp.mu.Unlock()
	slog.Info("web publisher updated", "date", digest.Date.Format("2006-01-02"))
	return nil
}

func (wp *WebPublisher) handleIndex(w http.ResponseWriter, r *http.Request) {
	wp.mu.RLock()
	digest := wp.latest
	wp.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if digest == nil {
		fmt.Fprint(w, `<!DOCTYPE html><html><body><h1>AI Daily</h1><p>No digest available yet. Check back later.</p></body></html>`)
		return
	}

	fmt.Fprint(w, buildHTMLBody(digest))
}
