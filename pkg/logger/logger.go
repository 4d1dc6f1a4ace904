// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var once sync.Once

// Init sets the global level and routes log output to a console writer on
// stderr. Later calls only change the level.
func Init(level string) error {
	return InitWithWriter(level, os.Stderr)
}

// InitWithWriter is Init with a custom destination.
func InitWithWriter(level string, out io.Writer) error {
	if err := setLevel(level); err != nil {
		return err
	}
	once.Do(func() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05.000",
			FormatLevel: func(i interface{}) string {
				return strings.ToUpper(fmt.Sprintf("%-5s", i))
			},
		}).With().Timestamp().Logger()
	})
	return nil
}

func setLevel(level string) error {
	switch strings.ToUpper(level) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN", "":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("incorrect log level %q", level)
	}
	return nil
}
