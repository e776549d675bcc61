package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// jsonValue prepares an attribute value for encoding/json. Floats are
// written through their console form so 30.0 stays a float after a
// reload instead of coming back as the integer 30.
func jsonValue(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return model.FormatValue(t)
		}
		return json.Number(model.FormatValue(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonValue(e)
		}
		return out
	default:
		return v
	}
}

// yamlValue is jsonValue for yaml.v3, which would otherwise also drop the
// decimal point of integral floats.
func yamlValue(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return model.FormatValue(t)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: model.FormatValue(t)}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

// encodeRecord returns the JSON object stored for one record
func encodeRecord(rec *model.Record) ([]byte, error) {
	data, err := json.Marshal(jsonValue(rec.ToMap()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", rec.Key(), err)
	}
	return data, nil
}

// encodeAttributes returns the JSON object holding only user attributes
func encodeAttributes(rec *model.Record) ([]byte, error) {
	attrs := make(map[string]any, len(rec.Attributes))
	for k, v := range rec.Attributes {
		attrs[k] = v
	}
	data, err := json.Marshal(jsonValue(attrs))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", rec.Key(), err)
	}
	return data, nil
}

// decodeObject decodes a JSON object keeping numbers as json.Number so the
// model can tell integers from floats
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
