// Package base
package base

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
)

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
	levelFatal
)

var levelNames = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelColors = []*color.Color{
	color.New(color.FgCyan),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgRed),
	color.New(color.FgRed, color.Bold),
}

type Logger struct {
	debug   bool
	mu      sync.Mutex
	logFile *os.File
}

func NewLogger() *Logger {
	return &Logger{}
}

func (logger *Logger) Init(debug bool) {
	logger.debug = debug
	file, err := os.OpenFile(*global.LogFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, global.DefaultFilePermissions)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Unable to open log file %s: %v\n", *global.LogFilePath, err)
	} else {
		logger.logFile = file
	}
	slog.SetDefault(slog.New(newSlogBridge(logger)))
}

func (logger *Logger) log(level logLevel, msg string) {
	if level == levelDebug && !logger.debug {
		return
	}
	now := time.Now().Format("2006/01/02 15:04:05")
	logger.mu.Lock()
	defer logger.mu.Unlock()
	_, _ = levelColors[level].Fprintf(os.Stdout, "%s [%s] %s\n", now, levelNames[level], msg)
	if logger.logFile != nil {
		_, _ = fmt.Fprintf(logger.logFile, "%s [%s] %s\n", now, levelNames[level], msg)
	}
}

func (logger *Logger) ShutdownCallback() global.Callable {
	return &loggerShutdownCallback{logger: logger}
}

func (logger *Logger) Debug(msg string, v ...interface{}) {
	logger.log(levelDebug, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) DebugF(msg string, v ...interface{}) {
	logger.log(levelDebug, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Info(msg string, v ...interface{}) {
	logger.log(levelInfo, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) InfoF(msg string, v ...interface{}) {
	logger.log(levelInfo, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Warn(msg string, v ...interface{}) {
	logger.log(levelWarn, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) WarnF(msg string, v ...interface{}) {
	logger.log(levelWarn, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Error(msg string, v ...interface{}) {
	logger.log(levelError, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) ErrorF(msg string, v ...interface{}) {
	logger.log(levelError, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Fatal(msg string, v ...interface{}) {
	logger.log(levelFatal, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) FatalF(msg string, v ...interface{}) {
	logger.log(levelFatal, fmt.Sprintf(msg, v...))
}

type loggerShutdownCallback struct {
	logger *Logger
}

func (callback *loggerShutdownCallback) Invoke(_ context.Context) error {
	callback.logger.mu.Lock()
	defer callback.logger.mu.Unlock()
	if callback.logger.logFile == nil {
		return nil
	}
	return callback.logger.logFile.Close()
}

// slogBridge 把slog记录(主要来自slog-echo)转发到Logger
type slogBridge struct {
	logger *Logger
	attrs  []slog.Attr
}

func newSlogBridge(logger *Logger) *slogBridge {
	return &slogBridge{logger: logger}
}

func (bridge *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return bridge.logger.debug
	}
	return true
}

func (bridge *slogBridge) Handle(_ context.Context, record slog.Record) error {
	msg := record.Message
	appendAttr := func(attr slog.Attr) bool {
		msg += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
		return true
	}
	for _, attr := range bridge.attrs {
		appendAttr(attr)
	}
	record.Attrs(appendAttr)
	switch {
	case record.Level >= slog.LevelError:
		bridge.logger.Error(msg)
	case record.Level >= slog.LevelWarn:
		bridge.logger.Warn(msg)
	case record.Level >= slog.LevelInfo:
		bridge.logger.Info(msg)
	default:
		bridge.logger.Debug(msg)
	}
	return nil
}

func (bridge *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogBridge{logger: bridge.logger, attrs: append(bridge.attrs[:len(bridge.attrs):len(bridge.attrs)], attrs...)}
}

func (bridge *slogBridge) WithGroup(_ string) slog.Handler {
	return bridge
}
