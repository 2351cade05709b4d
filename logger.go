package segmentify

import (
	"log"
	"os"
)

// Logger is the package logger.
var Logger = log.New(os.Stderr, "[segmentify] ", log.LstdFlags)

// SetLogger replaces the package logger.
func SetLogger(logger *log.Logger) {
	Logger = logger
}
