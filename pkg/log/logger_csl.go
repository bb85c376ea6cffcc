package log

import (
	"context"
	"log"
	"os"
)

// CslLogger writes leveled, printf-style lines to stdout. Progress and
// errors of a scrape run are meant to be read from the console.
type CslLogger struct {
	std *log.Logger
}

func NewCslLogger() (*CslLogger, error) {
	return &CslLogger{
		std: log.New(os.Stdout, "", log.LstdFlags),
	}, nil
}

func (l *CslLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.std.Printf("[INFO] "+format, args...)
}

func (l *CslLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.std.Printf("[WARN] "+format, args...)
}

func (l *CslLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.std.Printf("[ERROR] "+format, args...)
}

func (l *CslLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.std.Printf("[DEBUG] "+format, args...)
}

func (l *CslLogger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.std.Printf("[CRITICAL] "+format, args...)
}
