package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

const logFilePermission = 0664

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer. When
// logFile is set every entry is also appended to that file; the returned
// closer releases it.
func NewLogger(env, logFile string) (zerolog.Logger, io.Closer, error) {
	var out io.Writer = os.Stdout
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePermission)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out = zerolog.MultiLevelWriter(out, zerolog.SyncWriter(f))
		closer = f
	}
	return zerolog.New(out).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// GormWriter routes gorm's logger output into zerolog.
type GormWriter struct{ L zerolog.Logger }

func (w GormWriter) Printf(format string, args ...any) {
	w.L.Warn().Str("component", "gorm").Msgf(format, args...)
}

func NewGormLogger(l zerolog.Logger) logger.Interface {
	return logger.New(GormWriter{L: l}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
