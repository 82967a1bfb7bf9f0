// Package validator проверяет записи с персональными данными по таблице
// регулярных выражений и собирает статистику ошибок по полям.
package validator

import "fmt"

// Field хранит имя поля записи и его значение.
type Field struct {
	Name  string
	Value any
}

// Record описывает запись входного массива. Порядок полей совпадает с порядком
// ключей во входном объекте и сохраняется при записи результата.
type Record struct {
	Fields []Field
}

// NewRecord собирает запись из полей в заданном порядке.
func NewRecord(fields ...Field) Record {
	return Record{Fields: fields}
}

// Get возвращает значение поля и признак его наличия.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Len() int {
	return len(r.Fields)
}

// Outcome содержит результат проверки одной записи.
type Outcome struct {
	Valid        bool
	FailedFields []string
}

// MatchMode определяет, как шаблон сопоставляется с текстом значения.
type MatchMode string

const (
	// MatchPrefix: шаблон должен совпасть с началом текста, хвост игнорируется.
	MatchPrefix MatchMode = "prefix"
	// MatchFull: шаблон должен покрыть текст целиком.
	MatchFull MatchMode = "full"
)

// ParseMatchMode разбирает режим сопоставления; пустая строка означает MatchPrefix.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchPrefix:
		return MatchPrefix, nil
	case MatchFull:
		return MatchFull, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (allowed: %s, %s)", s, MatchPrefix, MatchFull)
	}
}

// FieldErrors хранит число записей, не прошедших проверку по полю.
type FieldErrors struct {
	Field string `json:"field" yaml:"field"`
	Count int    `json:"count" yaml:"count"`
}

// Report содержит агрегированную статистику одного прогона.
// Инвариант: Valid + Invalid == Total.
type Report struct {
	Total         int
	Valid         int
	Invalid       int
	ErrorsByField map[string]int
	// Fields хранит порядок полей таблицы правил для вывода.
	Fields []string
}

func newReport(fields []string) Report {
	errs := make(map[string]int, len(fields))
	for _, f := range fields {
		errs[f] = 0
	}
	return Report{
		ErrorsByField: errs,
		Fields:        append([]string(nil), fields...),
	}
}

// FieldErrors возвращает счётчики ошибок в порядке таблицы правил.
func (r Report) FieldErrors() []FieldErrors {
	out := make([]FieldErrors, 0, len(r.Fields))
	for _, f := range r.Fields {
		out = append(out, FieldErrors{Field: f, Count: r.ErrorsByField[f]})
	}
	return out
}

// Result объединяет выход движка: валидные записи в исходном порядке,
// результат по каждой записи и отчёт.
type Result struct {
	Valid    []Record
	Outcomes []Outcome
	Report   Report
}
