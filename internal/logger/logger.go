// Package logger is the process-wide structured log. The TUI owns the
// terminal and the MCP server owns stdout, so records always go to a file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// L is the global logger instance. It discards all output until Init enables it.
var L *slog.Logger = slog.New(slog.DiscardHandler)

// DefaultProgram names the log files when Options.Program is empty
const DefaultProgram = "a11ytree"

const (
	logSuffix         = ".log"
	dateLayout        = "2006-01-02"
	defaultRetainDays = 14
)

// Options configures the logger initialization.
type Options struct {
	Enabled    bool       // If false, all logging is discarded
	LogDir     string     // Default: ~/.a11ytree/logs
	Level      slog.Level // Minimum level; the zero value is info
	Program    string     // File name prefix, one per binary so they never share a file
	RetainDays int        // Days of files kept; 0 means 14
}

var (
	mu      sync.Mutex
	current *dailyFile
)

// Init configures logging. Call from main() before any log calls.
// Calling it again closes the previous file.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeCurrent()
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".a11ytree", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	program := opts.Program
	if program == "" {
		program = DefaultProgram
	}
	retain := opts.RetainDays
	if retain <= 0 {
		retain = defaultRetainDays
	}

	f := &dailyFile{dir: dir, prefix: program + "-", retain: retain, now: time.Now}
	if err := f.rotate(f.now()); err != nil {
		return err
	}
	current = f

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})
	L = slog.New(handler).With("pid", os.Getpid())
	return nil
}

// Close flushes and closes the log file and discards further records
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	L = slog.New(slog.DiscardHandler)
	return closeCurrent()
}

func closeCurrent() error {
	if current == nil {
		return nil
	}
	err := current.Close()
	current = nil
	return err
}

// For returns a logger that tags every record with component. Resolve it
// at call time: loggers taken before Init keep discarding.
func For(component string) *slog.Logger {
	return L.With("component", component)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
// Numeric offsets such as "debug-2" or "warn+1" are accepted as slog does.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		if strings.EqualFold(strings.TrimSpace(s), "warning") {
			return slog.LevelWarn
		}
		return slog.LevelInfo
	}
	return level
}

// dailyFile writes to <prefix><date>.log and starts a new file when the
// date changes, so a long TUI session does not grow one file forever.
type dailyFile struct {
	mu     sync.Mutex
	dir    string
	prefix string
	retain int
	now    func() time.Time

	day  string
	file *os.File
}

var _ io.WriteCloser = (*dailyFile)(nil)

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Format(dateLayout) != d.day {
		if err := d.rotate(now); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

// rotate opens the file for now's date and prunes expired files.
// Callers hold d.mu, except Init before the file is shared.
func (d *dailyFile) rotate(now time.Time) error {
	day := now.Format(dateLayout)
	name := filepath.Join(d.dir, d.prefix+day+logSuffix)

	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.file != nil {
		d.file.Close()
	}
	d.file = f
	d.day = day

	cleanOldLogs(d.dir, d.prefix, now.AddDate(0, 0, -d.retain))
	return nil
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// cleanOldLogs removes this program's files dated before cutoff
func cleanOldLogs(dir, prefix string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		date, ok := strings.CutPrefix(name, prefix)
		if !ok || !strings.HasSuffix(date, logSuffix) {
			continue
		}
		logDate, err := time.Parse(dateLayout, strings.TrimSuffix(date, logSuffix))
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
