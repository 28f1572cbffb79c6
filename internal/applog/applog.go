// Package applog owns the single logrus instance used by every component of
// the randomization core. Nothing else constructs a logger or writes to
// stdout directly.
package applog

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Valid only after Init has run; Init is safe to
// call more than once (idempotent) and from concurrent tests.
var Log *logrus.Logger

var once sync.Once

// Init configures the global logger from the environment:
// ZORA_LOG_LEVEL (default "info") and ZORA_LOG_FORMAT ("json" or "text",
// default "text"). Must be called once at process start, before Generate.
func Init() {
	once.Do(func() {
		Log = logrus.New()

		levelName, ok := os.LookupEnv("ZORA_LOG_LEVEL")
		if !ok {
			levelName = "info"
		}
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		Log.SetLevel(level)

		if strings.ToLower(os.Getenv("ZORA_LOG_FORMAT")) == "json" {
			Log.SetFormatter(&logrus.JSONFormatter{})
		} else {
			Log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})
		}

		Log.SetOutput(os.Stdout)
	})
}

// WithSeed returns a log entry pre-populated with the seed field, the most
// common correlation key across a generation run.
func WithSeed(seed uint64) *logrus.Entry {
	return L().WithField("seed", seed)
}

// L returns the shared logger, initializing it from the environment on
// first use so packages never need to sequence their own call to Init.
func L() *logrus.Logger {
	if Log == nil {
		Init()
	}
	return Log
}
