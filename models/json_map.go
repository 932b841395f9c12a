package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
)

// JSONMap stores a JSON object in a plain text column so the schema stays
// portable between SQLite and MySQL. A nil map is stored as SQL NULL.
type JSONMap map[string]interface{}

// Value implements driver.Valuer by encoding the map to a JSON string.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner by decoding a JSON string back into the map.
// Malformed text is reported as-is; there is no recovery path.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(data, m)
}

// GormDataType forces a text column on every supported backend.
func (JSONMap) GormDataType() string {
	return "text"
}

// Merge copies the entries of extra into the map and reports whether any
// key was added or replaced with a different value.
func (m *JSONMap) Merge(extra map[string]interface{}) bool {
	if len(extra) == 0 {
		return false
	}
	if *m == nil {
		*m = JSONMap{}
	}

	changed := false
	for key, value := range extra {
		current, ok := (*m)[key]
		if !ok || !reflect.DeepEqual(current, value) {
			(*m)[key] = value
			changed = true
		}
	}
	return changed
}
