package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spadmin/internal/events"
	"spadmin/internal/logger"
	"spadmin/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductHandler struct {
	products  *mongo.Collection
	publisher *events.Publisher
	logger    *logger.Logger
	dev       bool
}

func NewProductHandler(products *mongo.Collection, publisher *events.Publisher, log *logger.Logger, dev bool) *ProductHandler {
	return &ProductHandler{
		products:  products,
		publisher: publisher,
		logger:    log,
		dev:       dev,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err, h.dev)
		return
	}

	name, ok := payload["name"].(string)
	if !ok || name == "" {
		respondError(c, http.StatusBadRequest, "Product name is required", nil, h.dev)
		return
	}

	doc := normalizeProductPayload(payload)
	if errs := validateProduct(doc); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	now := time.Now()
	doc["_id"] = primitive.NewObjectID()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	applyCreateDefaults(doc)

	if _, err := h.products.InsertOne(c.Request.Context(), doc); err != nil {
		h.logger.Error("product create error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create product", err, h.dev)
		return
	}

	id := doc["_id"].(primitive.ObjectID)
	h.publisher.Publish(c.Request.Context(), events.Event{
		Type:      events.TypeProductCreated,
		ProductID: id.Hex(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    doc,
	})
}

func (h *ProductHandler) List(c *gin.Context) {
	page := 1
	if parsed, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && parsed > 1 {
		page = parsed
	}

	limit := 20
	if parsed, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		limit = parsed
	}
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}

	filters := bson.M{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	if search := c.Query("search"); search != "" {
		filters["$text"] = bson.M{"$search": search}
	}

	ctx := c.Request.Context()

	opts := options.Find().
		SetSort(parseSort(c.DefaultQuery("sort", "-createdAt"))).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := h.products.Find(ctx, filters, opts)
	if err != nil {
		h.logger.Error("product list error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch products", err, h.dev)
		return
	}

	items := make([]models.Product, 0, limit)
	if err := cursor.All(ctx, &items); err != nil {
		h.logger.Error("product list decode error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch products", err, h.dev)
		return
	}

	total, err := h.products.CountDocuments(ctx, filters)
	if err != nil {
		h.logger.Error("product count error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch products", err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": items,
			"pagination": gin.H{
				"total": total,
				"page":  page,
				"limit": limit,
				"pages": pageCount(total, limit),
			},
		},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil, h.dev)
		return
	}

	var product models.Product
	err = h.products.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Product not found", nil, h.dev)
		return
	}
	if err != nil {
		h.logger.Error("product detail error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch product", err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil, h.dev)
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err, h.dev)
		return
	}

	updates := normalizeProductPayload(payload)
	if errs := validateProduct(updates); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	delete(updates, "_id")
	delete(updates, "createdAt")
	updates["updatedAt"] = time.Now()

	var product models.Product
	err = h.products.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Product not found", nil, h.dev)
		return
	}
	if err != nil {
		h.logger.Error("product update error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update product", err, h.dev)
		return
	}

	h.publisher.Publish(c.Request.Context(), events.Event{
		Type:      events.TypeProductUpdated,
		ProductID: oid.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id", nil, h.dev)
		return
	}

	var product models.Product
	err = h.products.FindOneAndDelete(c.Request.Context(), bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		respondError(c, http.StatusNotFound, "Product not found", nil, h.dev)
		return
	}
	if err != nil {
		h.logger.Error("product delete error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete product", err, h.dev)
		return
	}

	h.publisher.Publish(c.Request.Context(), events.Event{
		Type:      events.TypeProductDeleted,
		ProductID: oid.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// normalizeProductPayload copies the request payload and normalizes the
// fields the CRUD API cares about: features become an array of trimmed,
// non-empty strings (a newline-delimited string splits into the same),
// numeric fields coerce only when they parse to finite values, and falsy tag
// entries are dropped. Unknown fields pass through untouched.
func normalizeProductPayload(payload map[string]interface{}) bson.M {
	doc := bson.M{}
	for key, value := range payload {
		doc[key] = value
	}

	switch features := doc["features"].(type) {
	case []interface{}:
		cleaned := make([]string, 0, len(features))
		for _, feature := range features {
			s, _ := feature.(string)
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		doc["features"] = cleaned
	case string:
		cleaned := []string{}
		for _, line := range strings.Split(features, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		doc["features"] = cleaned
	}

	for _, key := range []string{"price", "salePrice", "stock"} {
		value, ok := doc[key]
		if !ok {
			continue
		}
		if n, ok := parseNumber(value); ok {
			doc[key] = n
		}
	}

	if tags, ok := doc["tags"].([]interface{}); ok {
		cleaned := make([]interface{}, 0, len(tags))
		for _, tag := range tags {
			if truthy(tag) {
				cleaned = append(cleaned, tag)
			}
		}
		doc["tags"] = cleaned
	}

	return doc
}

// parseNumber succeeds only for finite numeric values; anything else is left
// to validation.
func parseNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	}
	return true
}

// validateProduct reports one message per invalid field in the normalized
// payload. Only fields present in the payload are checked, so partial
// updates validate what they touch.
func validateProduct(doc bson.M) []string {
	var errs []string

	if name, ok := doc["name"]; ok {
		if s, isString := name.(string); !isString || strings.TrimSpace(s) == "" {
			errs = append(errs, "Product name is required")
		}
	}

	for _, key := range []string{"price", "salePrice", "stock"} {
		value, ok := doc[key]
		if !ok {
			continue
		}
		n, isNumber := value.(float64)
		if !isNumber {
			errs = append(errs, fmt.Sprintf("%s must be a number", key))
			continue
		}
		if n < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", key))
		}
	}

	if status, ok := doc["status"]; ok {
		if s, isString := status.(string); !isString || !models.ValidStatus(s) {
			errs = append(errs, "status must be one of draft, active, inactive")
		}
	}

	return errs
}

func applyCreateDefaults(doc bson.M) {
	if _, ok := doc["status"]; !ok {
		doc["status"] = models.StatusActive
	}
	if _, ok := doc["stock"]; !ok {
		doc["stock"] = float64(0)
	}
	if _, ok := doc["isFeatured"]; !ok {
		doc["isFeatured"] = false
	}
	if _, ok := doc["specifications"]; !ok {
		doc["specifications"] = bson.M{}
	}
	if _, ok := doc["metadata"]; !ok {
		doc["metadata"] = bson.M{}
	}
}

// parseSort turns a sort string ("-createdAt", "name price")
// into a sort document. A leading '-' means descending.
func parseSort(sort string) bson.D {
	var result bson.D
	for _, field := range strings.FieldsFunc(sort, func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = field[1:]
		}
		if field != "" {
			result = append(result, bson.E{Key: field, Value: direction})
		}
	}
	if len(result) == 0 {
		result = bson.D{{Key: "createdAt", Value: -1}}
	}
	return result
}

func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
