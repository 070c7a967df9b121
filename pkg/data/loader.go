// Package data loads JSON record lists for kodudo, with or without the
// aptoro metadata envelope.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidData marks inputs that cannot be parsed into a record list.
var ErrInvalidData = errors.New("invalid data")

// fallbackKeys are probed, in order, when a JSON object carries no aptoro
// envelope but wraps its records under a conventional key.
var fallbackKeys = []string{"data", "records", "items", "results"}

// LoadedData is the parsed content of a data file: the records templates
// iterate over, plus the schema metadata when the source embedded one.
type LoadedData struct {
	Records []map[string]any
	Meta    map[string]any
	HasMeta bool
}

// Len returns the number of records.
func (d LoadedData) Len() int {
	return len(d.Records)
}

// Load reads a JSON data file. Three shapes are accepted: a plain array of
// records, an aptoro envelope {"meta": {...}, "data": [...]}, or an object
// wrapping its records under one of data/records/items/results.
func Load(path string) (LoadedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return LoadedData{}, fmt.Errorf("data: read %s: %w", path, err)
	}

	var content any
	if err := json.Unmarshal(raw, &content); err != nil {
		return LoadedData{}, fmt.Errorf("data: %w: parse %s: %v", ErrInvalidData, path, err)
	}

	switch v := content.(type) {
	case []any:
		records, err := toRecords(v)
		if err != nil {
			return LoadedData{}, err
		}
		return LoadedData{Records: records, Meta: map[string]any{}}, nil

	case map[string]any:
		return loadObject(v)

	default:
		return LoadedData{}, fmt.Errorf("data: %w: expected a JSON array or object, got %T", ErrInvalidData, content)
	}
}

func loadObject(content map[string]any) (LoadedData, error) {
	rawMeta, hasMeta := content["meta"]
	rawData, hasData := content["data"]

	if hasMeta && hasData {
		meta, ok := rawMeta.(map[string]any)
		if !ok {
			return LoadedData{}, fmt.Errorf("data: %w: 'meta' must be an object", ErrInvalidData)
		}
		list, ok := rawData.([]any)
		if !ok {
			return LoadedData{}, fmt.Errorf("data: %w: 'data' must be an array", ErrInvalidData)
		}
		records, err := toRecords(list)
		if err != nil {
			return LoadedData{}, err
		}
		return LoadedData{Records: records, Meta: meta, HasMeta: true}, nil
	}

	for _, key := range fallbackKeys {
		list, ok := content[key].([]any)
		if !ok {
			continue
		}
		records, err := toRecords(list)
		if err != nil {
			return LoadedData{}, err
		}
		return LoadedData{Records: records, Meta: map[string]any{}}, nil
	}

	return LoadedData{}, fmt.Errorf("data: %w: expected an array, a meta/data envelope, or an object with a data/records/items/results key", ErrInvalidData)
}

func toRecords(list []any) ([]map[string]any, error) {
	records := make([]map[string]any, len(list))
	for i, entry := range list {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("data: %w: record %d is not an object", ErrInvalidData, i)
		}
		records[i] = record
	}
	return records, nil
}
