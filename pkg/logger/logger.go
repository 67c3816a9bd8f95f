package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"uptime-monitor/config"

	"github.com/rs/zerolog"
)

const prodStr string = "production"

// Init builds the base logger from config, installs it as the global zerolog
// logger and returns it for injection.
func Init(cfg *config.Config) *zerolog.Logger {
	// Set global level based on environment
	switch cfg.Env {
	case prodStr:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	baseLogger := New(os.Stdout, cfg.Env, cfg.ServiceName)

	log.Logger = baseLogger

	return &baseLogger
}

// New returns a logger writing to out. Outside production the output is a
// human readable console format with caller info.
func New(out io.Writer, env, service string) zerolog.Logger {
	var baseLogger zerolog.Logger

	if env == prodStr {
		baseLogger = zerolog.New(out)
	} else {
		baseLogger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stdout,
			PartsOrder: []string{
				"time", "level", "caller", "service", "env", "message", "err",
			},
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%s]", i))
			},
			FormatCaller: func(caller any) string {
				return fmt.Sprintf("(%s)", caller)
			},
		})
	}

	baseLogger = baseLogger.With().
		Timestamp().
		Str("service", service).
		Str("env", env).
		Logger()

	// Add caller info for dev
	if env != prodStr {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	return baseLogger
}
