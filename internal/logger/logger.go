package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init must run before first use.
var Log *logrus.Logger

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT
// ("json" or text). Output goes to stderr; stdout carries the answers.
func Init() {
	InitWithOutput(os.Stderr)
}

func InitWithOutput(w io.Writer) {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	Log.SetOutput(w)
}

// Debugging reports whether debug entries would be written, so hot loops
// can skip building fields.
func Debugging() bool {
	return Log != nil && Log.IsLevelEnabled(logrus.DebugLevel)
}
