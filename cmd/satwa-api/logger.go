package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger пишет JSON в stdout и, если задан logFile, ещё и в ротируемый файл.
func newLogger(logFile, level string) (*slog.Logger, func()) {
	var w io.Writer = os.Stdout
	closeFn := func() {}
	if logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, lj)
		closeFn = func() { _ = lj.Close() }
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h), closeFn
}
