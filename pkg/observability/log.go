package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and HTTP events to a structured logger at debug
// level. Failures are logged as warnings, and 5xx responses as errors.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger.WithPrefix("hooks")}
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

func (h *LogHooks) OnImportStart(_ context.Context, source string) {
	h.Logger.Debug("import started", "source", source)
}

func (h *LogHooks) OnImportComplete(_ context.Context, source string, stations, edges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("import failed", "source", source, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("import done", "source", source, "stations", stations, "edges", edges, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, dest string, stations, edges int) {
	h.Logger.Debug("export started", "dest", dest, "stations", stations, "edges", edges)
}

func (h *LogHooks) OnExportComplete(_ context.Context, dest string, lines, stops int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("export failed", "dest", dest, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("export done", "dest", dest, "lines", lines, "stops", stops, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Error("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request error", "method", method, "path", path, "err", err)
}
