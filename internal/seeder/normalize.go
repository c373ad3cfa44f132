package seeder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"spadmin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// defaultStock applies when a seed record carries no usable stock value.
const defaultStock = 50

var (
	slugSeparators  = regexp.MustCompile(`[^a-z0-9]+`)
	slugApostrophes = strings.NewReplacer("'", "", "’", "")
)

// slugify lower-cases the base, drops apostrophes so contractions stay one
// word, collapses remaining non-alphanumeric runs to single hyphens, and
// strips leading/trailing hyphens.
func slugify(base string) string {
	slug := slugApostrophes.Replace(strings.ToLower(base))
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// normalizeSeedProduct maps one raw frontend product into the document
// upserted by the reconciliation pipeline. legacyId is the stable upsert key:
// the explicit id or slug when present, otherwise a categoryKey-index
// synthesis that stays stable across runs for unchanged source data.
func normalizeSeedProduct(product map[string]interface{}, categoryKey, categoryName string, index int) bson.M {
	legacyID := asString(product["id"])
	if legacyID == "" {
		legacyID = asString(product["slug"])
	}
	if legacyID == "" {
		legacyID = fmt.Sprintf("%s-%d", categoryKey, index)
	}

	slugBase := firstNonEmpty(
		asString(product["slug"]),
		asString(product["id"]),
		asString(product["name"]),
		legacyID,
	)

	subcategory := asString(product["subcategory"])
	if subcategory == "" {
		subcategory = asString(product["subCategory"])
	}

	sizes := stringSlice(product["available_sizes"], false)
	if sizes == nil {
		sizes = stringSlice(product["sizes"], false)
	}
	if sizes == nil {
		sizes = []string{}
	}

	doc := bson.M{
		"name":            asString(product["name"]),
		"brand":           asString(product["brand"]),
		"price":           numberOrZero(product["price"]),
		"category":        categoryKey,
		"categoryName":    categoryName,
		"subcategory":     subcategory,
		"description":     asString(product["description"]),
		"features":        orEmpty(stringSlice(product["features"], false)),
		"image_links":     orEmpty(stringSlice(product["image_links"], true)),
		"colors":          orEmpty(stringSlice(product["colors"], false)),
		"available_sizes": sizes,
		"rating":          numberOrZero(product["rating"]),
		"stock":           stockValue(product["stock"]),
		"isBestseller":    truthy(product["isBestseller"]),
		"source":          models.SourceSeed,
		"legacyId":        legacyID,
		"slug":            slugify(slugBase),
		"metadata": bson.M{
			"importedAt":           time.Now(),
			"originalCategoryName": categoryName,
		},
	}

	// salePrice stays absent unless it coerces to a usable number.
	if sale, ok := asNumber(product["salePrice"]); ok && sale != 0 {
		doc["salePrice"] = sale
	}

	return doc
}

func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func numberOrZero(value interface{}) float64 {
	n, ok := asNumber(value)
	if !ok {
		return 0
	}
	return n
}

// stockValue coerces stock to a number, falling back to the default when the
// value is unset, unparseable, or zero.
func stockValue(value interface{}) float64 {
	if n, ok := asNumber(value); ok && n != 0 {
		return n
	}
	return defaultStock
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case nil:
		return false
	default:
		return true
	}
}

// stringSlice converts an array value into strings. Non-array values yield
// nil. When dropEmpty is set, empty entries are filtered out.
func stringSlice(value interface{}, dropEmpty bool) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		s := asString(item)
		if dropEmpty && s == "" {
			continue
		}
		result = append(result, s)
	}
	return result
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
