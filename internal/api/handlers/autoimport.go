package handlers

import (
	"net/http"
	"strconv"

	"spadmin/internal/events"
	"spadmin/internal/importer"
	"spadmin/internal/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AutoImportHandler struct {
	importer  *importer.Importer
	watcher   *importer.Watcher
	db        *mongo.Database
	publisher *events.Publisher
	logger    *logger.Logger
	dev       bool
}

func NewAutoImportHandler(im *importer.Importer, watcher *importer.Watcher, db *mongo.Database, publisher *events.Publisher, log *logger.Logger, dev bool) *AutoImportHandler {
	return &AutoImportHandler{
		importer:  im,
		watcher:   watcher,
		db:        db,
		publisher: publisher,
		logger:    log,
		dev:       dev,
	}
}

type collectionRequest struct {
	CollectionName string `json:"collectionName"`
}

// Import runs the full import pipeline for the requested collection.
func (h *AutoImportHandler) Import(c *gin.Context) {
	var req collectionRequest
	// Body is optional; an empty or absent body means the default collection.
	c.ShouldBindJSON(&req)

	h.logger.Info("starting automatic import...")
	result, err := h.importer.AutoImport(c.Request.Context(), req.CollectionName)
	if err != nil {
		h.logger.Error("auto-import error: %v", err)
		respondError(c, http.StatusInternalServerError, "Auto-import failed", err, h.dev)
		return
	}

	h.publisher.Publish(c.Request.Context(), events.Event{
		Type: events.TypeImportCompleted,
		Data: map[string]interface{}{
			"collectionName": result.CollectionName,
			"documentCount":  result.DocumentCount,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data imported successfully from frontend",
		"data":    result,
	})
}

// Status reports document count and a sample document for a collection.
func (h *AutoImportHandler) Status(c *gin.Context) {
	stats, err := h.importer.Stats(c.Request.Context(), c.Query("collectionName"))
	if err != nil {
		h.logger.Error("status error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get status", err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// Sync starts the change watcher for a collection and returns immediately.
// Watcher startup failures are logged, not surfaced.
func (h *AutoImportHandler) Sync(c *gin.Context) {
	var req collectionRequest
	c.ShouldBindJSON(&req)

	collectionName := req.CollectionName
	if collectionName == "" {
		collectionName = importer.DefaultCollection
	}

	if err := h.watcher.Start(collectionName); err != nil {
		h.logger.Error("sync error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Auto-sync started",
		"collectionName": collectionName,
	})
}

// Collections lists every collection in the database with its document count.
func (h *AutoImportHandler) Collections(c *gin.Context) {
	ctx := c.Request.Context()

	names, err := h.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		h.logger.Error("collections error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get collections", err, h.dev)
		return
	}

	collections := make([]gin.H, 0, len(names))
	for _, name := range names {
		count, err := h.db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			h.logger.Error("collections error: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to get collections", err, h.dev)
			return
		}
		collections = append(collections, gin.H{
			"name":          name,
			"documentCount": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "collections": collections})
}

// Data returns a paged raw dump of one collection.
func (h *AutoImportHandler) Data(c *gin.Context) {
	name := c.Param("collection")

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		limit = 10
	}
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		skip = 0
	}

	ctx := c.Request.Context()
	coll := h.db.Collection(name)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		h.logger.Error("data fetch error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch data", err, h.dev)
		return
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit).SetSkip(skip))
	if err != nil {
		h.logger.Error("data fetch error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch data", err, h.dev)
		return
	}

	documents := make([]bson.M, 0, limit)
	if err := cursor.All(ctx, &documents); err != nil {
		h.logger.Error("data fetch error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch data", err, h.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"collection": gin.H{
			"name":          name,
			"documentCount": count,
			"documents":     documents,
		},
	})
}
