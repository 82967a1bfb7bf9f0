package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Text приводит значение поля к строке, с которой сравнивается шаблон.
// Скаляры выводятся так же, как их печатала прежняя версия утилиты:
// null как "None", логические значения как "True"/"False", дробные
// числа всегда с точкой или экспонентой ("100.0", "1e+16").
// Функция никогда не завершается ошибкой: составные значения выводятся
// как компактный JSON либо через %v.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case json.Number:
		return numberText(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return floatText(x)
	case fmt.Stringer:
		return x.String()
	}
	b, err := marshalLiteral(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// numberText оставляет целые литералы как есть, а дробные и
// экспоненциальные нормализует через floatText.
func numberText(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return lit
	}
	return floatText(f)
}

// floatText печатает кратчайшее представление числа: в обычной записи при
// десятичном порядке от -4 до 15 (всегда с дробной частью), иначе в
// экспоненциальной с двузначным порядком.
func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// marshalLiteral кодирует значение в JSON без экранирования <, >, &.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
