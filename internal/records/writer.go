package records

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	apperrors "record-validator/internal/errors"
	"record-validator/internal/utils"
	"record-validator/internal/validator"
)

// Indent задаёт отступ выходного файла.
const Indent = "    "

// Encode пишет записи массивом JSON с отступом в четыре пробела.
// Не-ASCII символы и <, >, & выводятся как есть. Пустой набор даёт [].
func Encode(w io.Writer, recs []validator.Record) error {
	if recs == nil {
		recs = []validator.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(recs); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFormat, "encode records", err)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if _, err := w.Write(out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "write records", err)
	}
	return nil
}

// WriteFile атомарно записывает записи в path.
func WriteFile(path string, recs []validator.Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, recs); err != nil {
		return err
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, "prepare output", err)
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeIO, "write output", err,
			map[string]any{"path": path})
	}
	return nil
}

// Stdout пишет записи в стандартный вывод.
func Stdout(recs []validator.Record) error {
	if err := Encode(os.Stdout, recs); err != nil {
		return err
	}
	_, err := os.Stdout.WriteString("\n")
	return err
}
