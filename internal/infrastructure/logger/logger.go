package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

var out io.Writer = os.Stdout

func init() {
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

	Info = log.New(out, "INFO: ", logFlags)
	Error = log.New(out, "ERROR: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
	Warn = log.New(out, "WARN: ", logFlags)
}

// SetOutput redirects every level. The CLI sends logs to stderr so stdout
// stays free for batch status.
func SetOutput(w io.Writer) {
	out = w
	Info.SetOutput(w)
	Error.SetOutput(w)
	Warn.SetOutput(w)
	if Debug.Writer() != io.Discard {
		Debug.SetOutput(w)
	}
}

// SetDebug turns encoder stdout and other debug lines on or off.
func SetDebug(enabled bool) {
	if enabled {
		Debug.SetOutput(out)
		return
	}
	Debug.SetOutput(io.Discard)
}
