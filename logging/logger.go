// Package logging owns the process-wide zap logger. Output goes to a rotated
// JSON file only; stdout and stderr belong to the terminal UI.
package logging

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/efield/config"
)

var (
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// Initialize installs the global logger from cfg, once per process
// A disabled logger installs zap.NewNop
func Initialize(cfg config.LoggerConfig) {
	if !cfg.Enabled || cfg.LogFile == "" {
		InitializeWithWriter(cfg, nil)
		return
	}
	InitializeWithWriter(cfg, zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}))
}

// InitializeWithWriter installs a JSON logger writing to ws; nil ws installs a no-op logger
func InitializeWithWriter(cfg config.LoggerConfig, ws zapcore.WriteSyncer) {
	once.Do(func() {
		if ws == nil {
			globalLogger.Store(zap.NewNop())
			return
		}
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}
		core := zapcore.NewCore(newEncoder(), ws, level)
		logger := zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("efield")
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
	})
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// GetLogger returns the global logger, or a no-op logger before Initialize
func GetLogger() *zap.Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Sync flushes buffered entries
func Sync() {
	if l := globalLogger.Load(); l != nil {
		_ = l.Sync()
	}
}

// ResetForTest clears the global logger so a test can initialize again
func ResetForTest() {
	globalLogger.Store(nil)
	once = sync.Once{}
}
