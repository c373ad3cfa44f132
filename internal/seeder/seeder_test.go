package seeder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spadmin/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func TestResolveDataPath(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	present := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(present, []byte(`{}`), 0o644))

	path, err := resolveDataPath([]string{missing, present})
	require.NoError(t, err)
	assert.Equal(t, present, path)

	_, err = resolveDataPath([]string{missing})
	assert.ErrorIs(t, err, ErrSeedSourceNotFound)
}

func TestSeedInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":[]}`), 0o644))

	s := NewWithPaths(nil, testLogger(), []string{path})

	_, err := s.Seed(context.Background())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSeedEmptyCategoriesIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories":{}}`), 0o644))

	s := NewWithPaths(nil, testLogger(), []string{path})

	result, err := s.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)
}

func TestBuildUpsertOps(t *testing.T) {
	docs := []bson.M{
		{"legacyId": "jackets-0", "name": "Security Jacket", "source": "seed"},
		{"legacyId": "boots-1", "name": "Patrol Boot", "source": "seed"},
	}

	ops, legacyIDs := buildUpsertOps(docs)

	assert.Equal(t, []string{"jackets-0", "boots-1"}, legacyIDs)
	require.Len(t, ops, 2)

	first, ok := ops[0].(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"legacyId": "jackets-0"}, first.Filter)
	assert.Equal(t, bson.M{"$set": docs[0]}, first.Update)
	require.NotNil(t, first.Upsert)
	assert.True(t, *first.Upsert)

	second, ok := ops[1].(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"legacyId": "boots-1"}, second.Filter)
}

func TestBuildUpsertOpsStableAcrossRuns(t *testing.T) {
	docs := flattenCategories(map[string]interface{}{
		"jackets": map[string]interface{}{
			"name":     "Jackets",
			"products": []interface{}{map[string]interface{}{"name": "Security Jacket"}},
		},
	})

	_, firstRun := buildUpsertOps(docs)
	_, secondRun := buildUpsertOps(docs)

	// Unchanged source data targets the same upsert filters every run, so
	// re-seeding inserts nothing new.
	assert.Equal(t, firstRun, secondRun)
	assert.Equal(t, []string{"jackets-0"}, firstRun)
}

func TestPruneFilter(t *testing.T) {
	ids := []string{"jackets-0", "boots-1"}

	assert.Equal(t, bson.M{
		"source":   "seed",
		"legacyId": bson.M{"$nin": ids},
	}, pruneFilter(ids))
}

func TestFlattenCategories(t *testing.T) {
	categories := map[string]interface{}{
		"jackets": map[string]interface{}{
			"name": "Jackets",
			"products": []interface{}{
				map[string]interface{}{"name": "Security Jacket"},
				map[string]interface{}{"name": "Rain Jacket"},
			},
		},
		"boots": map[string]interface{}{
			"products": []interface{}{
				map[string]interface{}{"name": "Patrol Boot"},
				"not a product",
			},
		},
		"broken": "not a category",
	}

	docs := flattenCategories(categories)
	require.Len(t, docs, 3)

	// Categories flatten in sorted key order; legacyIds synthesize from the
	// per-category index.
	assert.Equal(t, "boots-0", docs[0]["legacyId"])
	assert.Equal(t, "jackets-0", docs[1]["legacyId"])
	assert.Equal(t, "jackets-1", docs[2]["legacyId"])

	// A category without a name falls back to its key.
	assert.Equal(t, "boots", docs[0]["categoryName"])
	assert.Equal(t, "Jackets", docs[1]["categoryName"])
}

func TestFlattenCategoriesStableAcrossRuns(t *testing.T) {
	categories := map[string]interface{}{
		"a": map[string]interface{}{"products": []interface{}{map[string]interface{}{"name": "one"}}},
		"b": map[string]interface{}{"products": []interface{}{map[string]interface{}{"name": "two"}}},
	}

	first := flattenCategories(categories)
	second := flattenCategories(categories)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i]["legacyId"], second[i]["legacyId"])
	}
}
