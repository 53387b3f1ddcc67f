package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a Logger writing to w. Format "text" uses slog's text handler,
// "json" uses zerolog. Level is one of debug, info, warn, error.
func New(format, level string, w io.Writer) (Logger, error) {
	switch format {
	case FormatText, "":
		return newTextLogger(w, level)

	case FormatJSON:
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return NewZerologLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
