package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Languages maps a language name to the number of bytes written in it.
// Stored as JSONB.
type Languages map[string]int64

func (l *Languages) Scan(value any) error {
	if value == nil {
		*l = Languages{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("languages: ожидался []byte или string, получен %T", value)
	}

	if len(bytes) == 0 {
		*l = Languages{}
		return nil
	}

	out := Languages{}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return fmt.Errorf("languages: ошибка разбора JSON: %w", err)
	}
	*l = out
	return nil
}

func (l Languages) Value() (driver.Value, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]int64(l))
}

func (l Languages) Has(language string) bool {
	_, ok := l[language]
	return ok
}

// Names returns the language keys in alphabetical order.
func (l Languages) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
