package global

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger = zap.NewNop()

func Log() *zap.Logger {
	return Logger
}

// LogInit builds the global zap logger from the log config section.
// Output goes to stderr and, when a file path is configured, to the file.
func LogInit(c LogConfig) error {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level),
	}

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(f), level))
	}

	Logger = zap.New(zapcore.NewTee(cores...))
	return nil
}
