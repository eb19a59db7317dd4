package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger for env. Local runs get a console
// writer at trace level.
func NewLogger(env string, out io.Writer) (zerolog.Logger, error) {
	zerolog.TimestampFieldName = "timestamp"

	var level zerolog.Level
	switch env {
	case EnvLocal:
		level = zerolog.TraceLevel
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		out = consoleWriter
	case EnvDev:
		level = zerolog.DebugLevel
	case EnvProd:
		level = zerolog.InfoLevel
	default:
		return zerolog.Nop(), fmt.Errorf("unknown env: %s", env)
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}
