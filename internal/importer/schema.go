package importer

import "time"

// FieldKind is the inferred storage type for a single dotted field path.
type FieldKind string

const (
	KindString      FieldKind = "String"
	KindNumber      FieldKind = "Number"
	KindBoolean     FieldKind = "Boolean"
	KindDate        FieldKind = "Date"
	KindStringArray FieldKind = "[String]"
	KindObjectArray FieldKind = "[Object]"
)

// Schema maps dotted field paths to inferred kinds. It is built from a single
// sample record per import run and lives only in the in-process registry.
type Schema map[string]FieldKind

func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for key, kind := range s {
		if other[key] != kind {
			return false
		}
	}
	return true
}

// InferSchema walks one sample record and produces a flat field-to-kind map.
// Nested objects flatten into parent.child paths; the parent key itself gets
// no kind. Null values are skipped entirely.
func InferSchema(sample map[string]interface{}) Schema {
	schema := Schema{}
	analyzeFields(sample, "", schema)
	return schema
}

func analyzeFields(obj map[string]interface{}, prefix string, schema Schema) {
	for key, value := range obj {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			// A string is a date only when it parses as one AND is longer
			// than 10 characters, keeping short codes like "N/A" as strings.
			if len(v) > 10 && parsesAsDate(v) {
				schema[fullKey] = KindDate
			} else {
				schema[fullKey] = KindString
			}
		case float64:
			schema[fullKey] = KindNumber
		case bool:
			schema[fullKey] = KindBoolean
		case []interface{}:
			if len(v) > 0 {
				if _, ok := v[0].(map[string]interface{}); ok {
					schema[fullKey] = KindObjectArray
					continue
				}
			}
			schema[fullKey] = KindStringArray
		case map[string]interface{}:
			analyzeFields(v, fullKey, schema)
		}
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

func parsesAsDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
