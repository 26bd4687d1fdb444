package nock

import (
	"io"
	"log"
)

// Log is the package logger, silent by default. nockcat's -v flag points it
// at stderr; library callers may redirect it the same way.
var Log *log.Logger

func init() {
	Log = log.New(io.Discard, "nock: ", log.LstdFlags)
}
