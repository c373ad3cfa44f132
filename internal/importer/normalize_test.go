package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeIDsConverts24CharHex(t *testing.T) {
	doc := map[string]interface{}{
		"id":   "507f1f77bcf86cd799439011",
		"name": "x",
	}

	normalizeIDs(doc)

	_, hasID := doc["id"]
	assert.False(t, hasID)

	oid, ok := doc["_id"].(primitive.ObjectID)
	require.True(t, ok)
	assert.Equal(t, "507f1f77bcf86cd799439011", oid.Hex())
	assert.Equal(t, "x", doc["name"])
}

func TestNormalizeIDsLeavesShortIDs(t *testing.T) {
	doc := map[string]interface{}{
		"id":   "short",
		"name": "x",
	}

	normalizeIDs(doc)

	assert.Equal(t, "short", doc["id"])
	_, hasObjectID := doc["_id"]
	assert.False(t, hasObjectID)
}

func TestNormalizeIDsLeavesInvalidHex(t *testing.T) {
	doc := map[string]interface{}{
		"id": "zzzzzzzzzzzzzzzzzzzzzzzz", // 24 chars, not hex
	}

	normalizeIDs(doc)

	assert.Equal(t, "zzzzzzzzzzzzzzzzzzzzzzzz", doc["id"])
}

func TestNormalizeIDsRecurses(t *testing.T) {
	doc := map[string]interface{}{
		"nested": map[string]interface{}{
			"id": "507f1f77bcf86cd799439011",
		},
		"list": []interface{}{
			map[string]interface{}{"id": "507f191e810c19729de860ea"},
		},
	}

	normalizeIDs(doc)

	nested := doc["nested"].(map[string]interface{})
	_, ok := nested["_id"].(primitive.ObjectID)
	assert.True(t, ok)

	item := doc["list"].([]interface{})[0].(map[string]interface{})
	_, ok = item["_id"].(primitive.ObjectID)
	assert.True(t, ok)
}

func TestConvertToDocuments(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "507f1f77bcf86cd799439011", "name": "a"},
		{"name": "b"},
		{"id": "other", "name": "c"},
	}

	docs := ConvertToDocuments(records)
	require.Len(t, docs, 3)

	first := docs[0].(map[string]interface{})
	oid, ok := first["_id"].(primitive.ObjectID)
	require.True(t, ok)
	assert.Equal(t, "507f1f77bcf86cd799439011", oid.Hex())
	_, hasID := first["id"]
	assert.False(t, hasID)
	assert.NotNil(t, first["createdAt"])
	assert.NotNil(t, first["updatedAt"])

	second := docs[1].(map[string]interface{})
	_, ok = second["_id"].(primitive.ObjectID)
	assert.True(t, ok, "records without an id get a generated ObjectID")

	// A non-reference id becomes the document identifier as-is.
	third := docs[2].(map[string]interface{})
	assert.Equal(t, "other", third["_id"])
	_, hasID = third["id"]
	assert.False(t, hasID)

	// Source records stay untouched.
	assert.Equal(t, "507f1f77bcf86cd799439011", records[0]["id"])
}
