package api

import (
	"encoding/json"
)

type Response struct {
	Status int
	Data   json.RawMessage
}

func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}

// Unwrap returns the value of the first keys entry present in a JSON object
// body, or the whole body. The Backend API wraps payloads inconsistently
// ({"data": ...}, {"user": ...} or bare).
func (r *Response) Unwrap(keys ...string) json.RawMessage {
	var obj map[string]json.RawMessage
	if json.Unmarshal(r.Data, &obj) != nil {
		return r.Data
	}
	for _, k := range keys {
		if v, ok := obj[k]; ok && string(v) != "null" {
			return v
		}
	}
	return r.Data
}
