// Package logging настраивает slog для утилиты: текстовый или JSON-вывод
// в stderr, уровень из флага или переменной окружения LOG_LEVEL.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel задаёт переменную окружения с уровнем логирования.
const EnvLogLevel = "LOG_LEVEL"

// Format определяет формат вывода журнала.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLevel разбирает уровень без учёта регистра; неизвестное значение даёт INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger создаёт логгер с атрибутами module и version.
// Пустой level берётся из LOG_LEVEL.
func NewLogger(w io.Writer, module, version, level string, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}
	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("module", module, "version", version)
}

// SetDefault устанавливает логгер по умолчанию для slog.
func SetDefault(module, version, level string, format Format) *slog.Logger {
	logger := NewLogger(os.Stderr, module, version, level, format)
	slog.SetDefault(logger)
	return logger
}
