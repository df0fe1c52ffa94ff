package models

import "encoding/json"

// NullableString is an optional patch field. Set records that the key was
// present, so an explicit null (Set with a nil Value) clears the column.
type NullableString struct {
	Set   bool
	Value *string
}

// SetString returns a field that assigns s.
func SetString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

// ClearString returns a field that assigns null.
func ClearString() NullableString {
	return NullableString{Set: true}
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
