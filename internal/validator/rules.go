package validator

import (
	"fmt"
	"regexp"

	apperrors "record-validator/internal/errors"
)

// Rule связывает имя поля с шаблоном допустимого значения.
type Rule struct {
	Field   string
	Pattern string
	prefix  *regexp.Regexp
	full    *regexp.Regexp
}

// NewRule компилирует шаблон в двух вариантах: с привязкой к началу текста
// и с привязкой к началу и концу.
func NewRule(field, pattern string) (Rule, error) {
	prefix, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %q: %w", field, err)
	}
	full, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %q: %w", field, err)
	}
	return Rule{Field: field, Pattern: pattern, prefix: prefix, full: full}, nil
}

// Match сообщает, удовлетворяет ли текст шаблону в выбранном режиме.
func (r Rule) Match(text string, mode MatchMode) bool {
	if mode == MatchFull {
		return r.full.MatchString(text)
	}
	return r.prefix.MatchString(text)
}

// RuleTable хранит неизменяемую упорядоченную таблицу правил.
type RuleTable struct {
	rules []Rule
	index map[string]int
	mode  MatchMode
}

// NewRuleTable строит таблицу; повтор имени поля считается ошибкой конфигурации.
func NewRuleTable(rules ...Rule) (*RuleTable, error) {
	t := &RuleTable{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
		mode:  MatchPrefix,
	}
	for _, r := range rules {
		if _, dup := t.index[r.Field]; dup {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				fmt.Sprintf("duplicate rule for field %q", r.Field),
				map[string]any{"field": r.Field})
		}
		t.index[r.Field] = len(t.rules)
		t.rules = append(t.rules, r)
	}
	return t, nil
}

// WithMatchMode возвращает копию таблицы с другим режимом сопоставления.
// Правила разделяются между копиями: они не изменяются после создания.
func (t *RuleTable) WithMatchMode(mode MatchMode) *RuleTable {
	return &RuleTable{rules: t.rules, index: t.index, mode: mode}
}

func (t *RuleTable) MatchMode() MatchMode {
	return t.mode
}

// Lookup ищет правило по имени поля.
func (t *RuleTable) Lookup(field string) (Rule, bool) {
	i, ok := t.index[field]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

// Fields возвращает имена полей в порядке объявления.
func (t *RuleTable) Fields() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Field
	}
	return out
}

func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Check проверяет все поля записи, без досрочного выхода после первой ошибки,
// чтобы счётчики по полям были полными.
func (t *RuleTable) Check(rec Record) (Outcome, error) {
	var failed []string
	for _, f := range rec.Fields {
		rule, ok := t.Lookup(f.Name)
		if !ok {
			return Outcome{}, apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				fmt.Sprintf("no rule for field %q", f.Name),
				map[string]any{"field": f.Name})
		}
		if !rule.Match(Text(f.Value), t.mode) {
			failed = append(failed, f.Name)
		}
	}
	return Outcome{Valid: len(failed) == 0, FailedFields: failed}, nil
}
