package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores free-form key/value detail columns as jsonb.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return m.parseFromBytes(v)
	case string:
		return m.parseFromBytes([]byte(v))
	default:
		return fmt.Errorf("JSONMap: unsupported Scan type %T", src)
	}
}

func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("JSONMap: marshal: %w", err)
	}
	return string(raw), nil
}

func (m *JSONMap) parseFromBytes(b []byte) error {
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("JSONMap: parse: %w", err)
	}
	*m = JSONMap(out)
	return nil
}
