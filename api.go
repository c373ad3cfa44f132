// Vercel serverless entrypoint. The router is built once per instance; a
// database that is unreachable at cold start is reported per-request instead
// of crashing the function.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"spadmin/internal/api"
	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/logger"

	"github.com/gin-gonic/gin"
)

var (
	initOnce sync.Once
	router   *gin.Engine
	initErr  error
)

func initServer() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}

	logg := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		initErr = err
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		logg.Error("failed to ensure indexes: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router = api.New(cfg, logg, db).GetRouter()
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(initServer)

	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	router.ServeHTTP(w, r)
}
