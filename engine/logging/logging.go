// package logging builds the zerolog logger every other package receives through its WithLogger option.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
//
// Parameters:
//   - name: trace, debug, info, warn or error, in any case
//
// Returns:
//   - zerolog.Level: the matching level
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// New creates a timestamped console logger. The first writer gets colored output, any further writers (log
// files) get plain output. With no writers the logger writes to stderr.
//
// Parameters:
//   - level: the minimum level name, see ParseLevel
//   - writers: destinations
//
// Returns:
//   - zerolog.Logger: the logger
func New(level string, writers ...io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}

	outs := make([]io.Writer, len(writers))
	for i, w := range writers {
		outs[i] = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    i > 0,
		}
	}

	var out io.Writer = outs[0]
	if len(outs) > 1 {
		out = zerolog.MultiLevelWriter(outs...)
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}
