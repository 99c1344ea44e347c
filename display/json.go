package display

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON pretty-prints v. Raw API bodies are re-indented as-is so
// unknown fields survive.
func MarshalJSON(v interface{}) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.MarshalIndent(v, "", "  ")
}
