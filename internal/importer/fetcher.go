package importer

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DefaultCollection receives imported data when no collection name is given.
const DefaultCollection = "security-plus-data"

// DefaultSourcePaths are the locations probed, in order, for the frontend's
// data.json. The first existing file wins.
var DefaultSourcePaths = []string{
	"../security-plus-frontend/data.json",
	"../../security-plus-frontend/data.json",
	"../../../security-plus-frontend/data.json",
	"./frontend/data.json",
	"./public/data.json",
	"./data.json",
}

var ErrSourceNotFound = errors.New("data.json not found in any frontend location")

// FindSourceData probes the candidate paths in order and returns the parsed
// contents and resolved path of the first file that exists and parses as
// JSON. Candidates that are missing or unreadable are skipped.
func FindSourceData(paths []string) (interface{}, string, error) {
	for _, candidate := range paths {
		fullPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		raw, err := os.ReadFile(fullPath)
		if err != nil {
			continue
		}

		var data interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			continue
		}
		return data, fullPath, nil
	}
	return nil, "", ErrSourceNotFound
}

// toRecords normalizes parsed JSON into an ordered record slice: an array
// maps element-wise, anything else becomes a one-element slice. Non-object
// array elements contribute an empty record so document counts stay aligned
// with the source.
func toRecords(data interface{}) []map[string]interface{} {
	items, ok := data.([]interface{})
	if !ok {
		items = []interface{}{data}
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			record = map[string]interface{}{}
		}
		records = append(records, record)
	}
	return records
}
