package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application logger. It is usable before InitializeAppLog runs.
var Log = logrus.New()

// InitializeAppLog configures the level and formatter of Log.
// Unknown levels fall back to info; format "json" selects the JSON formatter.
func InitializeAppLog(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	Log.SetOutput(os.Stdout)
}
