package validator

import "fmt"

// ProgressFunc вызывается после обработки каждой записи.
type ProgressFunc func(done, total int)

// Option настраивает Engine.
type Option func(*Engine)

// WithProgress подключает наблюдателя за ходом проверки.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// Engine последовательно прогоняет записи через Validator.
// Счётчики принадлежат отдельному прогону, поэтому Engine можно
// использовать повторно.
type Engine struct {
	validator Validator
	progress  ProgressFunc
}

func New(v Validator, opts ...Option) *Engine {
	e := &Engine{validator: v}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run проверяет записи по порядку. Запись считается невалидной один раз,
// даже если не прошли несколько полей; счётчик каждого поля растёт отдельно.
// Ошибка конфигурации прерывает прогон.
func (e *Engine) Run(records []Record) (*Result, error) {
	res := &Result{
		Valid:    make([]Record, 0, len(records)),
		Outcomes: make([]Outcome, 0, len(records)),
		Report:   newReport(e.validator.Fields()),
	}
	for i, rec := range records {
		out, err := e.validator.Check(rec)
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", i, err)
		}
		res.Report.Total++
		if out.Valid {
			res.Report.Valid++
			res.Valid = append(res.Valid, rec)
		} else {
			res.Report.Invalid++
			for _, f := range out.FailedFields {
				res.Report.ErrorsByField[f]++
			}
		}
		res.Outcomes = append(res.Outcomes, out)
		if e.progress != nil {
			e.progress(i+1, len(records))
		}
	}
	return res, nil
}

// Validate выполняет однократный прогон записей по таблице правил.
func Validate(records []Record, v Validator, opts ...Option) (*Result, error) {
	return New(v, opts...).Run(records)
}
