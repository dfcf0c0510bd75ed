package logging

import (
	"log"
	"os"
)

// Logger is the subset of *log.Logger the services depend on.
type Logger interface {
	Printf(format string, args ...any)
}

// New creates a standard library logger with a consistent prefix and flags.
func New(service string) *log.Logger {
	prefix := "[" + service + "] "
	return log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.LUTC)
}

// Discard is a Logger that drops everything.
type Discard struct{}

func (Discard) Printf(string, ...any) {}
