package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "record-validator/internal/errors"
)

func TestDefaultRules_Order(t *testing.T) {
	assert.Equal(t, []string{
		"telephone", "weight", "inn", "passport_series", "occupation",
		"age", "political_views", "worldview", "address",
	}, DefaultRules().Fields())
	assert.Equal(t, MatchPrefix, DefaultRules().MatchMode())
}

func TestDefaultRules_Patterns(t *testing.T) {
	tests := []struct {
		field string
		value any
		want  bool
	}{
		{"telephone", "+7-(965)-091-91-53", true},
		{"telephone", "+7(965)091-91-53", false},
		{"telephone", "8-(965)-091-91-53", false},
		{"weight", json.Number("61"), true},
		{"weight", "120", true},
		{"weight", "6", false},
		{"weight", "-60", false},
		{"weight", json.Number("1e2"), true},
		{"weight", json.Number("7e0"), false},
		{"inn", "865346473212", true},
		{"inn", json.Number("86534647321"), false},
		{"passport_series", "27 14", true},
		{"passport_series", "2714", false},
		{"occupation", "Инженер-программист", true},
		{"occupation", "Data scientist", true},
		{"occupation", "1С-разработчик", false},
		{"occupation", nil, true},
		{"inn", nil, false},
		{"age", true, false},
		{"age", json.Number("34"), true},
		{"age", "5", false},
		{"age", "253", true}, // совпадение по началу строки
		{"political_views", "Либеральные", true},
		{"political_views", "Liberal", false},
		{"worldview", "Ёгизм", true},
		{"worldview", "", false},
		{"address", "ул. Ленина 12", true},
		{"address", "пр-т 60-летия Октября 3", true},
		{"address", "Ленина", false},
		{"address", "Lenina st 12", false},
	}
	table := DefaultRules()
	for _, tt := range tests {
		t.Run(tt.field+"/"+Text(tt.value), func(t *testing.T) {
			rule, ok := table.Lookup(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.Match(Text(tt.value), MatchPrefix))
		})
	}
}

func TestRuleTable_Lookup(t *testing.T) {
	_, ok := DefaultRules().Lookup("salary")
	assert.False(t, ok)

	rule, ok := DefaultRules().Lookup("inn")
	require.True(t, ok)
	assert.Equal(t, `\d{12}`, rule.Pattern)
}

func TestNewRuleTable_Duplicate(t *testing.T) {
	a, err := NewRule("age", `\d{2}`)
	require.NoError(t, err)
	b, err := NewRule("age", `\d{3}`)
	require.NoError(t, err)

	_, err = NewRuleTable(a, b)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfiguration))
}

func TestNewRule_InvalidPattern(t *testing.T) {
	_, err := NewRule("broken", `[`)
	assert.Error(t, err)
}

func TestRule_MatchFull(t *testing.T) {
	rule, err := NewRule("age", `\d{2}`)
	require.NoError(t, err)
	assert.True(t, rule.Match("25", MatchFull))
	assert.False(t, rule.Match("253", MatchFull))
	assert.True(t, rule.Match("253", MatchPrefix))
}

func TestParseMatchMode(t *testing.T) {
	m, err := ParseMatchMode("")
	require.NoError(t, err)
	assert.Equal(t, MatchPrefix, m)

	m, err = ParseMatchMode("full")
	require.NoError(t, err)
	assert.Equal(t, MatchFull, m)

	_, err = ParseMatchMode("fuzzy")
	assert.Error(t, err)
}
