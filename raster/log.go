package raster

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records. Enabled returns false so a
// disabled logger costs nothing beyond the atomic load.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the package-level logger that Logger returns. By default
// it discards everything; pass nil to restore that. The draw paths do not
// write log records: rejected, clipped and culled primitives are dropped
// silently. Safe for concurrent use.
//
//	raster.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the package's current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
