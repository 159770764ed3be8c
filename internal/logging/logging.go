package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Component is the field every log line carries so output from the gateway,
// cache and controllers can be told apart in one stream.
const Component = "component"

var root = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.Kitchen,
}).With().Timestamp().Logger()

func init() {
	zerolog.SetGlobalLevel(levelFromEnv())
}

// ForComponent returns a logger tagged with the given component name.
func ForComponent(name string) zerolog.Logger {
	return root.With().Str(Component, name).Logger()
}

// SetOutput redirects all loggers created afterwards. Tests use it to keep
// stderr quiet.
func SetOutput(l zerolog.Logger) {
	root = l
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("VAULTGUARD_LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
