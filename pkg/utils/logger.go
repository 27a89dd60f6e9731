package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger tees JSON (console in debug) records to stdout and a rotated
// <LogPath>/<Name>.log, and installs the result as the zap global logger.
func InitLogger(config AppConfig) (*zap.Logger, error) {
	if config.LogPath != "" {
		if err := os.MkdirAll(config.LogPath, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if config.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if config.Debug {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	name := config.Name
	if name == "" {
		name = "movie-catalog"
	}
	rotated := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(config.LogPath, name+".log"),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, rotated, level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)

	return logger, nil
}
