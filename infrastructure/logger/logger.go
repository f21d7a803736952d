package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// logWriter forwards log output to stdout and, once InitLogRotator has
// been called, to the rotating log file as well.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotatorMutex.Lock()
	r := logRotator
	logRotatorMutex.Unlock()
	if r != nil {
		r.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	logRotator      *rotator.Rotator
	logRotatorMutex sync.Mutex

	subsystemLoggers      = make(map[string]btclog.Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns a logger for the given subsystem tag,
// creating it on first use. Packages call this once, into a
// package-level log variable.
func RegisterSubSystem(tag string) btclog.Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	if log, ok := subsystemLoggers[tag]; ok {
		return log
	}
	log := backendLog.Logger(tag)
	log.SetLevel(btclog.LevelInfo)
	subsystemLoggers[tag] = log
	return log
}

// InitLogRotator initializes the rotating file logger that logWriter
// mirrors all subsystem output into. It must be called before logging
// output is expected to reach the file.
func InitLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "failed to create log directory %s", logDir)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}

	logRotatorMutex.Lock()
	logRotator = r
	logRotatorMutex.Unlock()
	return nil
}

// SetLogLevels sets the log level of every registered subsystem logger
// to the given level string.
func SetLogLevels(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return errors.Errorf("unknown log level %q", level)
	}
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	for _, log := range subsystemLoggers {
		log.SetLevel(lvl)
	}
	return nil
}

type logClosure func() string

func (c logClosure) String() string {
	return c()
}

// NewLogClosure turns a function into a fmt.Stringer so expensive log
// argument construction only runs when the log level is enabled.
func NewLogClosure(c func() string) fmt.Stringer {
	return logClosure(c)
}
