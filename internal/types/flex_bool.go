package types

import (
	"encoding/json"
	"fmt"
)

// FlexBool is a bool that can be unmarshaled from a JSON bool, a JSON
// number (0/1), or a string ("0"/"1"/"true"/"false"). The attributes
// feed encodes option flags as strings.
type FlexBool bool

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "1", "true":
			*f = true
		case "", "0", "false":
			*f = false
		default:
			return fmt.Errorf("FlexBool: invalid bool string %q", s)
		}
		return nil
	}

	return fmt.Errorf("FlexBool: unexpected type, expected bool, number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Bool converts FlexBool back to bool.
func (f FlexBool) Bool() bool {
	return bool(f)
}
