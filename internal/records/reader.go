// Package records читает входной массив записей и записывает валидные записи.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	apperrors "record-validator/internal/errors"
	"record-validator/internal/utils"
	"record-validator/internal/validator"
)

// maxInputBytes ограничивает размер входного файла.
const maxInputBytes = 512 * 1024 * 1024

// Decode разбирает JSON-массив объектов. Порядок полей каждого объекта сохраняется.
func Decode(r io.Reader) ([]validator.Record, error) {
	data, err := io.ReadAll(io.LimitReader(utils.NewBOMReader(r), maxInputBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, "read input", err)
	}
	if len(data) > maxInputBytes {
		return nil, apperrors.New(apperrors.ErrCodeFormat, "input exceeds size limit")
	}
	return decodeArray(data)
}

func decodeArray(data []byte) ([]validator.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFormat, "decode input", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, apperrors.New(apperrors.ErrCodeFormat, "input must be a JSON array of objects")
	}

	out := make([]validator.Record, 0, 1024)
	for dec.More() {
		var rec validator.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeFormat, "decode record", err,
				map[string]any{"index": len(out)})
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFormat, "decode input", err)
	}
	if dec.More() {
		return nil, apperrors.New(apperrors.ErrCodeFormat, "unexpected data after JSON array")
	}
	return out, nil
}

// Loader читает файлы записей. Одновременные загрузки одного и того же пути
// выполняются один раз.
type Loader struct {
	group singleflight.Group
}

func NewLoader() *Loader {
	return &Loader{}
}

// Load читает и разбирает файл. Возвращаемый срез нельзя изменять:
// он может быть общим для нескольких вызывающих.
func (l *Loader) Load(path string) ([]validator.Record, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}
	result, err, shared := l.group.Do(key, func() (interface{}, error) {
		file, err := os.Open(path)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeIO, "open input", err,
				map[string]any{"path": path})
		}
		defer file.Close()
		recs, err := Decode(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	recs := result.([]validator.Record)
	slog.Debug("records loaded", "path", path, "count", len(recs), "shared", shared)
	return recs, nil
}
