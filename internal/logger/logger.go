package logger

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l     *log.Logger
	quiet bool
}

// New returns a Logger writing to w.  A quiet Logger drops Infof output.
func New(w io.Writer, quiet bool) Logger {
	return &stdLogger{l: log.New(w, "huffzip: ", 0), quiet: quiet}
}

func (s *stdLogger) Infof(format string, v ...any) {
	if s.quiet {
		return
	}
	s.l.Printf("[INFO] "+format, v...)
}

func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }
