// Package report выводит итоги проверки: в журнал и, при необходимости, в файл.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	apperrors "record-validator/internal/errors"
	"record-validator/internal/utils"
	"record-validator/internal/validator"
)

// Format определяет формат файла отчёта.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath выбирает формат по расширению: для .yaml/.yml YAML, иначе JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document хранит содержимое файла отчёта.
type Document struct {
	RunID       string                  `json:"runId" yaml:"runId"`
	GeneratedAt time.Time               `json:"generatedAt" yaml:"generatedAt"`
	Input       string                  `json:"input" yaml:"input"`
	Output      string                  `json:"output" yaml:"output"`
	MatchMode   validator.MatchMode     `json:"matchMode" yaml:"matchMode"`
	Total       int                     `json:"total" yaml:"total"`
	Valid       int                     `json:"valid" yaml:"valid"`
	Invalid     int                     `json:"invalid" yaml:"invalid"`
	Errors      []validator.FieldErrors `json:"errorsByField" yaml:"errorsByField"`
}

// NewDocument собирает отчёт; поля ошибок идут в порядке таблицы правил.
func NewDocument(input, output string, mode validator.MatchMode, r validator.Report) Document {
	return Document{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Input:       input,
		Output:      output,
		MatchMode:   mode,
		Total:       r.Total,
		Valid:       r.Valid,
		Invalid:     r.Invalid,
		Errors:      r.FieldErrors(),
	}
}

// Encode сериализует отчёт в выбранном формате.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	}
}

// WriteFile атомарно пишет отчёт; формат определяется расширением path.
func WriteFile(path string, doc Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, FormatFromPath(path)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFormat, "encode report", err)
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "prepare report", err)
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeIO, "write report", err,
			map[string]any{"path": path})
	}
	return nil
}

// Log пишет итоги: число валидных и невалидных записей, затем ошибки
// по каждому полю таблицы правил в её порядке.
func Log(logger *slog.Logger, job string, r validator.Report) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("count of correct data", "job", job, "valid", r.Valid)
	logger.Info("count of incorrect data", "job", job, "invalid", r.Invalid)
	for _, fe := range r.FieldErrors() {
		logger.Info(fmt.Sprintf("errors in %q", fe.Field), "job", job, "field", fe.Field, "count", fe.Count)
	}
}
