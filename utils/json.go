package utils

import (
	"bytes"
	"encoding/json"
)

// Marshal generic value to indented JSON, the layout every collection is stored in.
func MarshalIndentJSON[T any](input T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(input); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal JSON to generic struct
func UnmarshalFromJSON[T any](data []byte, output *T) error {
	return json.Unmarshal(data, output)
}
