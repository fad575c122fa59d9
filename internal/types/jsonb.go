package types

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Compile-time interface assertions.
// Scan is on pointer receivers; Value is on value receivers.
var (
	_ sql.Scanner   = (*ProjectRequirements)(nil)
	_ driver.Valuer = ProjectRequirements{}
	_ sql.Scanner   = (*Portfolio)(nil)
	_ driver.Valuer = Portfolio{}
	_ sql.Scanner   = (*ModificationLog)(nil)
	_ driver.Valuer = ModificationLog(nil)
)

// scanJSONB scans a JSONB database value into a Go pointer.
// It handles nil values, []byte, and string representations from different database drivers.
func scanJSONB(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonb: unsupported scan type %T", value)
	}
	return json.Unmarshal(data, dest)
}

// valueJSONB converts a Go value to a JSONB-compatible driver.Value.
func valueJSONB(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements the sql.Scanner interface for reading JSONB from the database.
func (r *ProjectRequirements) Scan(value interface{}) error {
	type alias ProjectRequirements
	return scanJSONB((*alias)(r), value)
}

// Value implements the driver.Valuer interface for writing JSONB to the database.
func (r ProjectRequirements) Value() (driver.Value, error) {
	type alias ProjectRequirements
	return valueJSONB(alias(r))
}

func (p *Portfolio) Scan(value interface{}) error {
	type alias Portfolio
	return scanJSONB((*alias)(p), value)
}

func (p Portfolio) Value() (driver.Value, error) {
	type alias Portfolio
	return valueJSONB(alias(p))
}

func (l *ModificationLog) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return scanJSONB((*[]Modification)(l), value)
}

// Value stores an empty log as an empty JSON array rather than NULL.
func (l ModificationLog) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return valueJSONB([]Modification(l))
}
