package validator

// Шаблоны полей. Диапазоны кириллицы: А-Я, а-я и отдельно Ё, ё.
var defaultPatterns = []struct {
	field   string
	pattern string
}{
	{"telephone", `[+]\d-[(]\d{3}[)]-\d{3}-\d{2}-\d{2}`},
	{"weight", `\d{2,3}`},
	{"inn", `\d{12}`},
	{"passport_series", `\d{2} \d{2}`},
	{"occupation", `[А-Яа-яЁёA-Za-z -]+?`},
	{"age", `\d{2}`},
	{"political_views", `[А-Яа-яЁё ]+?`},
	{"worldview", `[А-Яа-яЁё ]+?`},
	{"address", `[А-Яа-яЁё0-9 .-]+? \d+?`},
}

var defaultTable = mustDefaultTable()

func mustDefaultTable() *RuleTable {
	rules := make([]Rule, 0, len(defaultPatterns))
	for _, p := range defaultPatterns {
		r, err := NewRule(p.field, p.pattern)
		if err != nil {
			panic(err)
		}
		rules = append(rules, r)
	}
	t, err := NewRuleTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultRules возвращает общую для процесса таблицу правил (режим MatchPrefix).
func DefaultRules() *RuleTable {
	return defaultTable
}
