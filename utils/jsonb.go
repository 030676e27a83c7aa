package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap maps a JSONB column.
type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONMap: Scan failed, expected []byte but got %T", value)
	}

	return json.Unmarshal(b, j)
}

// ToJSONMap flattens any JSON-encodable struct into a JSONMap.
func ToJSONMap(v any) (JSONMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSONMap: %w", err)
	}
	var m JSONMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to JSONMap: %w", err)
	}
	return m, nil
}

// Decode fills target from the map through a JSON round trip.
func (j JSONMap) Decode(target any) error {
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to marshal JSONMap: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode JSONMap into %T: %w", target, err)
	}
	return nil
}
