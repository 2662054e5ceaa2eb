// Package jsonutil provides shared helpers for decoding the static JSON inputs
// (dataset rows, GeoJSON) with consistent error context.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArray unmarshals JSON data into a slice and validates that
// the result is non-empty. Returns an error if unmarshaling fails or
// the array is empty.
func UnmarshalArray[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: empty result", context)
	}
	return entries, nil
}

// ReadFile reads path and wraps a failure with context, so callers report
// "dataset: open data.json: no such file" instead of a bare os error.
func ReadFile(path, context string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%s: no path given", context)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return b, nil
}

// ReadArray reads a JSON array file into a non-empty slice.
func ReadArray[T any](path, context string) ([]T, error) {
	b, err := ReadFile(path, context)
	if err != nil {
		return nil, err
	}
	return UnmarshalArray[T](b, context)
}
