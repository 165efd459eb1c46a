package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blogpessoal/blogpessoal/internal/config"
)

// Init builds a JSON zap logger at the configured level. Output goes to the
// configured log file because the terminal UI owns stdout; an empty LogFile
// or "-" logs to stdout. The returned close func flushes the logger and
// closes the file, if one was opened.
func Init(cfg *config.Config) (*zap.Logger, func() error, error) {
	var (
		out  zapcore.WriteSyncer
		file io.Closer
	)
	switch cfg.LogFile {
	case "", "-":
		out = zapcore.Lock(os.Stdout)
	default:
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		out = zapcore.Lock(f)
	}

	log := New(cfg.LogLevel, out)
	closeFn := func() error {
		_ = log.Sync() // stdout sync fails on some terminals
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return log, closeFn, nil
}

// New returns a logger writing JSON lines to out.
func New(level string, out zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		out,
		parseLevel(level),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
