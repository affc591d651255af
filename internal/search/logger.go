package search

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

const (
	maxLogSize      = 10 * 1024 * 1024 // 10MB
	logBufferSize   = 32 * 1024        // 32KB
	maxLogRotations = 5
	logFileName     = "search.log"
)

type Logger struct {
	mu       sync.Mutex
	writer   *bufio.Writer
	file     *os.File
	path     string
	disabled bool
}

var (
	globalLogger *Logger
	loggerMu     sync.Mutex
	minLevel     atomic.Int32
	logDir       = filepath.Join(os.TempDir(), "namefind-logs")
	loggerBuffer = make(chan string, 1000)
)

func init() {
	minLevel.Store(int32(INFO))
	go processLogs()
}

// processLogs drains the log channel into the current log file
func processLogs() {
	for msg := range loggerBuffer {
		if l := getLogger(); l != nil && !l.disabled {
			l.mu.Lock()
			if l.writer != nil {
				l.writer.WriteString(msg)
				if len(loggerBuffer) == 0 {
					l.writer.Flush()
				}
			}
			l.mu.Unlock()
		}
	}
}

// getLogger returns the global logger, opening it on first use
func getLogger() *Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = openLogger(logDir)
	}
	return globalLogger
}

// openLogger opens dir/search.log for appending. A logger that cannot be
// opened is returned disabled so that searches run without logging.
func openLogger(dir string) *Logger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return &Logger{disabled: true}
	}

	logPath := filepath.Join(dir, logFileName)
	if err := rotateLogFile(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return &Logger{disabled: true}
	}

	writer := bufio.NewWriterSize(file, logBufferSize)
	fmt.Fprintf(writer, "\n=== Log started at %s (pid %d) ===\n",
		time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	writer.Flush()

	return &Logger{
		writer: writer,
		file:   file,
		path:   logPath,
	}
}

// rotateLogFile shifts search.log -> search.log.1 -> ... once it grows past
// maxLogSize. Concurrent processes sharing the directory serialize on a lock file.
func rotateLogFile(logPath string) error {
	lock := flock.New(logPath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", logPath, err)
	}
	defer lock.Unlock()

	fi, err := os.Stat(logPath)
	if err != nil || fi.Size() <= maxLogSize {
		return nil
	}

	for i := maxLogRotations - 1; i > 0; i-- {
		oldPath := fmt.Sprintf("%s.%d", logPath, i)
		newPath := fmt.Sprintf("%s.%d", logPath, i+1)
		os.Rename(oldPath, newPath)
	}
	return os.Rename(logPath, logPath+".1")
}

func logf(level LogLevel, format string, args ...interface{}) {
	if level < LogLevel(minLevel.Load()) {
		return
	}
	l := getLogger()
	if l == nil || l.disabled {
		return
	}

	msg := fmt.Sprintf("%s [%s] "+format+"\n",
		append([]interface{}{time.Now().Format("15:04:05.000"), level}, args...)...)
	select {
	case loggerBuffer <- msg:
	default:
		// buffer full, drop
	}
}

func logDebug(format string, args ...interface{}) { logf(DEBUG, format, args...) }
func logInfo(format string, args ...interface{}) { logf(INFO, format, args...) }
func logWarning(format string, args ...interface{}) { logf(WARNING, format, args...) }

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLogLevel converts "debug", "info", "warn"/"warning" or "error"
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Close flushes and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer != nil {
		if err := l.writer.Flush(); err != nil {
			return fmt.Errorf("failed to flush log buffer: %w", err)
		}
	}

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
		l.writer = nil
	}

	return nil
}

// InitLogger points logging at dir with the given minimum level.
// A previously opened log file is closed first.
func InitLogger(dir string, level LogLevel) {
	minLevel.Store(int32(level))

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger != nil {
		globalLogger.Close()
	}
	if dir != "" {
		logDir = dir
	}
	globalLogger = openLogger(logDir)
}

// LogPath returns the file currently written to, or "" when logging is disabled
func LogPath() string {
	if l := getLogger(); l != nil && !l.disabled {
		return l.path
	}
	return ""
}

func CloseLogger() {
	// give queued messages a chance to land before the final flush
	for i := 0; i < 50 && len(loggerBuffer) > 0; i++ {
		time.Sleep(time.Millisecond)
	}
	if l := getLogger(); l != nil {
		if err := l.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}
}

func LogInfo(format string, args ...interface{}) { logInfo(format, args...) }
