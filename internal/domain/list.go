package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// StringList - упорядоченный список строк, хранится в JSONB колонке как массив.
// nil и пустой список сериализуются одинаково: [].
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("string list: unsupported source type %T", src)
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// Intersects возвращает true, если хотя бы один элемент есть в обоих списках
func (l StringList) Intersects(other []string) bool {
	if len(l) == 0 || len(other) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(l))
	for _, s := range l {
		set[s] = struct{}{}
	}
	for _, s := range other {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
