package importer

import (
	"testing"

	"spadmin/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func TestSplitBatches(t *testing.T) {
	docs := make([]interface{}, 250)
	for i := range docs {
		docs[i] = map[string]interface{}{"n": i}
	}

	batches := splitBatches(docs, 100)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)
}

func TestSplitBatchesEmpty(t *testing.T) {
	assert.Empty(t, splitBatches(nil, 100))
}

func TestSchemaRegistryLastWins(t *testing.T) {
	im := NewWithPaths(nil, testLogger(), nil)

	first := Schema{"a": KindString}
	second := Schema{"a": KindNumber, "b": KindBoolean}

	im.registerSchema("things", first)

	got, ok := im.RegisteredSchema("things")
	require.True(t, ok)
	assert.True(t, got.Equal(first))

	im.registerSchema("things", second)

	got, ok = im.RegisteredSchema("things")
	require.True(t, ok)
	assert.True(t, got.Equal(second))

	_, ok = im.RegisteredSchema("other")
	assert.False(t, ok)
}

func TestSchemaEqual(t *testing.T) {
	a := Schema{"x": KindString, "y": KindNumber}
	assert.True(t, a.Equal(Schema{"x": KindString, "y": KindNumber}))
	assert.False(t, a.Equal(Schema{"x": KindString}))
	assert.False(t, a.Equal(Schema{"x": KindString, "y": KindDate}))
}
