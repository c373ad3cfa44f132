package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSchema(t *testing.T) {
	sample := map[string]interface{}{
		"a": "2024-01-01T00:00:00Z",
		"b": "ok",
		"c": float64(3),
		"d": true,
		"e": []interface{}{float64(1), float64(2)},
		"f": []interface{}{map[string]interface{}{"x": float64(1)}},
		"g": map[string]interface{}{"h": "v"},
	}

	schema := InferSchema(sample)

	assert.Equal(t, Schema{
		"a":   KindDate,
		"b":   KindString,
		"c":   KindNumber,
		"d":   KindBoolean,
		"e":   KindStringArray,
		"f":   KindObjectArray,
		"g.h": KindString,
	}, schema)
}

func TestInferSchemaDateHeuristic(t *testing.T) {
	schema := InferSchema(map[string]interface{}{
		// Parses as a date but is exactly 10 characters, so it stays a string.
		"shortDate": "2024-01-01",
		"longDate":  "2024-01-01 12:30:00",
		"code":      "N/A",
	})

	assert.Equal(t, KindString, schema["shortDate"])
	assert.Equal(t, KindDate, schema["longDate"])
	assert.Equal(t, KindString, schema["code"])
}

func TestInferSchemaEmptyAndNullValues(t *testing.T) {
	schema := InferSchema(map[string]interface{}{
		"empty":   []interface{}{},
		"nothing": nil,
	})

	// Empty arrays default to string arrays; nulls get no kind at all.
	assert.Equal(t, KindStringArray, schema["empty"])
	_, ok := schema["nothing"]
	assert.False(t, ok)
}

func TestInferSchemaNestedFlattening(t *testing.T) {
	schema := InferSchema(map[string]interface{}{
		"outer": map[string]interface{}{
			"inner": map[string]interface{}{
				"leaf": float64(1),
			},
		},
	})

	assert.Equal(t, Schema{"outer.inner.leaf": KindNumber}, schema)
}
