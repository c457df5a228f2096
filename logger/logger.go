// Package logger provides a configurable logger shared across the provers and
// verifiers. It is safe to reconfigure while arguments run concurrently.
package logger

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	Set(zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger())
}

// update applies f to the current logger until no other update interleaves.
func update(f func(zerolog.Logger) zerolog.Logger) {
	for {
		old := logger.Load()
		l := f(*old)
		if logger.CompareAndSwap(old, &l) {
			return
		}
	}
}

// SetOutput changes the output of the global logger
func SetOutput(w io.Writer) {
	update(func(l zerolog.Logger) zerolog.Logger { return l.Output(w) })
}

// SetLevel changes the minimum level of the global logger
func SetLevel(lvl zerolog.Level) {
	update(func(l zerolog.Logger) zerolog.Logger { return l.Level(lvl) })
}

// Set allows a caller to provide its own logger
func Set(l zerolog.Logger) {
	logger.Store(&l)
}

// Disable disables logging
func Disable() {
	Set(zerolog.Nop())
}

// Logger returns the current logger
func Logger() zerolog.Logger {
	return *logger.Load()
}
