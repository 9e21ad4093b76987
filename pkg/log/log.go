// Package log builds the application logger.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. The zero value logs info and above
// to stderr.
type Options struct {
	Level    string // debug, info, warn, error
	FilePath string // when set, log to a rotating file instead of stderr
}

// New builds a zap logger. File output rotates via lumberjack so a
// long-running session cannot fill the disk with diagnostics.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, err
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"

	var sink zapcore.WriteSyncer
	if opts.FilePath != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
