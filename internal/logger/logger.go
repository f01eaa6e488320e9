// Package logger owns the process-wide zap logger. Until Init succeeds every
// helper is a no-op, so packages may log unconditionally.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init opens the log file chosen by Path and installs the global logger.
// The terminal belongs to the editor, so nothing is ever written to stderr.
func Init(debug bool) error {
	logPath, err := Path()
	if err != nil {
		return err
	}
	return InitAt(logPath, debug)
}

// InitAt installs the global logger writing to logPath, truncating it.
func InitAt(logPath string, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(f),
		level,
	)

	Close()
	logFile = f
	L = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	S = L.Sugar()

	S.Infow("logger initialized", "path", logPath, "debug", debug)
	return nil
}

// Close flushes and closes the logger. Later calls to the helpers are
// dropped until the next Init.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	L, S, logFile = nil, nil, nil
}

// Path returns the log file location:
// $RAWEDIT_LOG_FILE, $RAWEDIT_CONFIG_HOME/rawedit.log,
// $XDG_CONFIG_HOME/rawedit/rawedit.log or ~/.config/rawedit/rawedit.log.
func Path() (string, error) {
	if v := os.Getenv("RAWEDIT_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("RAWEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rawedit.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rawedit", "rawedit.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rawedit", "rawedit.log"), nil
}

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}
