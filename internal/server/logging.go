package server

import (
	"io"
	"log/slog"
	"os"

	"classroom/internal/config"
)

// NewLogger builds the service's JSON logger. Every record carries the
// service name. With LOG_DIR set, output is also written to a rotated file;
// the returned closer releases it.
func NewLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.ServiceName, cfg.LogMaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	})).With("service", cfg.ServiceName)

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
