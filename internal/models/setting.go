package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Setting is one row of the shared key/value settings store.
type Setting struct {
	Key   string       `json:"key"`
	Value SettingValue `json:"value"`
}

// SettingDoc is the Firestore shape of a setting. Value is always JSON text.
type SettingDoc struct {
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type settingValueKind int

const (
	settingValueEmpty settingValueKind = iota
	settingValueText
	settingValueStructured
)

// SettingValue holds a setting payload that may arrive either as a JSON string containing
// JSON text, or as an already structured JSON value.
type SettingValue struct {
	kind settingValueKind
	text string
	raw  json.RawMessage
}

// TextValue wraps a payload that was stored as text.
func TextValue(s string) SettingValue {
	return SettingValue{kind: settingValueText, text: s}
}

// StructuredValue wraps a payload that is already a JSON document.
func StructuredValue(raw json.RawMessage) SettingValue {
	return SettingValue{kind: settingValueStructured, raw: append(json.RawMessage(nil), raw...)}
}

// IsText reports whether the value arrived as a string payload.
func (v SettingValue) IsText() bool { return v.kind == settingValueText }

// IsEmpty reports whether the value was absent or null.
func (v SettingValue) IsEmpty() bool { return v.kind == settingValueEmpty }

// Document returns the payload as JSON bytes, unwrapping the text variant.
func (v SettingValue) Document() ([]byte, error) {
	switch v.kind {
	case settingValueText:
		return []byte(v.text), nil
	case settingValueStructured:
		return v.raw, nil
	}
	return nil, errors.New("setting value is empty")
}

func (v *SettingValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*v = SettingValue{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	default:
		*v = StructuredValue(trimmed)
	}
	return nil
}

func (v SettingValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case settingValueText:
		return json.Marshal(v.text)
	case settingValueStructured:
		return v.raw, nil
	}
	return []byte("null"), nil
}
