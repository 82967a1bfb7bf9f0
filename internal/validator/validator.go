package validator

// Validator проверяет одну запись целиком.
// Ошибка возвращается только при нарушении конфигурации (поле без правила);
// несовпадение значения с шаблоном отражается в Outcome.
type Validator interface {
	Fields() []string
	Check(rec Record) (Outcome, error)
}
