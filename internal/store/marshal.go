package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/tickinput/internal/trace"
)

// marshalErrors converts a run's failure messages to canonical JSON TEXT.
func marshalErrors(errs []string) (string, error) {
	list := make([]any, len(errs))
	for i, e := range errs {
		list[i] = e
	}
	data, err := trace.MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(data), nil
}

// unmarshalErrors parses the errors column. Returns an empty slice, never nil.
func unmarshalErrors(data string) ([]string, error) {
	errs := []string{}
	if data == "" || data == "[]" {
		return errs, nil
	}
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}

// analogArg converts an optional analog value to a nullable column value.
func analogArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
