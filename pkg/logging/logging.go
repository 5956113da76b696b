// Package logging builds the zap logger shared by the subcommands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xhad/ltcc/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func encoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// New builds the process logger from cfg: a stderr core when the console is
// enabled and a rotating file core when cfg.File is set, both at cfg.Level.
// Callers are recorded, and stack traces are kept for DPanic and above.
//
// lumberjack has no Sync, so the returned closer must be closed before exit
// to flush the file. The closer is never nil.
func New(cfg config.Logging) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var cores []zapcore.Core
	var closer io.Closer = nopCloser{}

	if cfg.ConsoleEnabled() {
		cores = append(cores, zapcore.NewCore(encoder(), zapcore.Lock(zapcore.AddSync(os.Stderr)), level))
	}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder(), zapcore.AddSync(rotating), level))
		closer = rotating
	}

	if len(cores) == 0 {
		return zap.NewNop(), closer, nil
	}
	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.DPanicLevel),
	), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
