package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON читает JSON-объект, сохраняя порядок ключей.
// Числа сохраняются как json.Number, чтобы текстовая форма совпадала с исходной.
// При повторе ключа остаётся последнее значение на месте первого вхождения.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	fields := make([]Field, 0, 16)
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if i, dup := seen[name]; dup {
			fields[i].Value = value
			continue
		}
		seen[name] = len(fields)
		fields = append(fields, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

// MarshalJSON пишет поля в исходном порядке; не-ASCII символы не экранируются.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalLiteral(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := marshalLiteral(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
