// Пакет utils содержит вспомогательные функции для работы с файлами.
// Все функции чистые и не зависят от глобального состояния.
package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM отбрасывает метку порядка байтов UTF-8 в начале данных.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// NewBOMReader оборачивает r и пропускает BOM, если он есть.
func NewBOMReader(r io.Reader) io.Reader {
	reader := bufio.NewReader(r)
	if b, err := reader.Peek(3); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = reader.Discard(3)
	}
	return reader
}

// WriteFileAtomic пишет данные в уникальный временный файл рядом с path
// и переименовывает его. При ошибке временный файл удаляется.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	if err := os.Chmod(tmpFile, perm); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

// EnsureParentDir создаёт каталог для файла path, если его нет.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// SamePath сообщает, указывают ли два пути на один файл после очистки.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// IsPathSafe проверяет, что путь не выходит за пределы baseDir (защита от path traversal).
func IsPathSafe(p, baseDir string) bool {
	cleanPath := filepath.Clean(p)
	rel, err := filepath.Rel(baseDir, cleanPath)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".."
}
