package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errTrailingData = errors.New("trailing data after document")

// DecodeJSONStrict unmarshals exactly one document, rejecting unknown fields.
func DecodeJSONStrict(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("failed to unmarshal JSON: %w", errTrailingData)
	}
	return nil
}
