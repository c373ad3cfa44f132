package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mens-security-jacket", slugify("Men's Security Jacket!!"))
	assert.Equal(t, "womens-patrol-boot", slugify("Women’s Patrol Boot"))
	assert.Equal(t, "a-b-c", slugify("  a  b--c  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestNormalizeSeedProductSlugFromName(t *testing.T) {
	doc := normalizeSeedProduct(map[string]interface{}{
		"name": "Men's Security Jacket!!",
	}, "jackets", "Jackets", 0)

	assert.Equal(t, "mens-security-jacket", doc["slug"])
}

func TestNormalizeSeedProductLegacyIDFallbacks(t *testing.T) {
	withID := normalizeSeedProduct(map[string]interface{}{"id": "sj-100"}, "jackets", "Jackets", 0)
	assert.Equal(t, "sj-100", withID["legacyId"])

	withSlug := normalizeSeedProduct(map[string]interface{}{"slug": "patrol-boot"}, "boots", "Boots", 2)
	assert.Equal(t, "patrol-boot", withSlug["legacyId"])

	synthesized := normalizeSeedProduct(map[string]interface{}{"name": "Anonymous"}, "boots", "Boots", 4)
	assert.Equal(t, "boots-4", synthesized["legacyId"])

	// Numeric ids stringify.
	numeric := normalizeSeedProduct(map[string]interface{}{"id": float64(42)}, "boots", "Boots", 0)
	assert.Equal(t, "42", numeric["legacyId"])
}

func TestNormalizeSeedProductDefaults(t *testing.T) {
	doc := normalizeSeedProduct(map[string]interface{}{
		"name":  "Duty Belt",
		"price": "not a number",
	}, "gear", "Gear", 0)

	assert.Equal(t, float64(0), doc["price"])
	assert.Equal(t, float64(0), doc["rating"])
	assert.Equal(t, float64(50), doc["stock"])
	assert.Equal(t, false, doc["isBestseller"])
	assert.Equal(t, "seed", doc["source"])
	assert.Equal(t, "gear", doc["category"])
	assert.Equal(t, "Gear", doc["categoryName"])

	_, hasSalePrice := doc["salePrice"]
	assert.False(t, hasSalePrice, "salePrice stays absent without a usable number")

	metadata, ok := doc["metadata"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Gear", metadata["originalCategoryName"])
	assert.NotNil(t, metadata["importedAt"])
}

func TestNormalizeSeedProductValues(t *testing.T) {
	doc := normalizeSeedProduct(map[string]interface{}{
		"name":         "Patrol Boot",
		"price":        float64(89.5),
		"salePrice":    "79.99",
		"stock":        float64(12),
		"rating":       float64(4.5),
		"isBestseller": "yes",
		"subcategory":  "footwear",
		"image_links":  []interface{}{"https://cdn/img1.jpg", "", "https://cdn/img2.jpg"},
		"sizes":        []interface{}{"8", "9"},
	}, "boots", "Boots", 1)

	assert.Equal(t, float64(89.5), doc["price"])
	assert.Equal(t, float64(79.99), doc["salePrice"])
	assert.Equal(t, float64(12), doc["stock"])
	assert.Equal(t, float64(4.5), doc["rating"])
	assert.Equal(t, true, doc["isBestseller"])
	assert.Equal(t, "footwear", doc["subcategory"])

	// Empty image links drop; the legacy sizes field feeds available_sizes.
	assert.Equal(t, []string{"https://cdn/img1.jpg", "https://cdn/img2.jpg"}, doc["image_links"])
	assert.Equal(t, []string{"8", "9"}, doc["available_sizes"])
}

func TestNormalizeSeedProductZeroStockGetsDefault(t *testing.T) {
	doc := normalizeSeedProduct(map[string]interface{}{
		"name":  "Vest",
		"stock": float64(0),
	}, "vests", "Vests", 0)

	assert.Equal(t, float64(50), doc["stock"])
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(false))
	assert.False(t, truthy(""))
	assert.False(t, truthy(float64(0)))
	assert.True(t, truthy(true))
	assert.True(t, truthy("yes"))
	assert.True(t, truthy(float64(1)))
	assert.True(t, truthy(map[string]interface{}{}))
}
