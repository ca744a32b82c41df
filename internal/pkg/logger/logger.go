package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// Options describes the process-wide logger.
type Options struct {
	App     string
	Version string
	Env     string
	Level   string
}

// New builds a JSON logger using the ECS field names, so service logs line up
// with the request logs written by httplog.
func New(w io.Writer, opts Options) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

// ParseLevel maps LOG_LEVEL values to slog levels. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
