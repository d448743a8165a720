// Package main is the demonstration JSON/HTTP surface over the village
// gateway: a thin gin router translating requests into gateway calls, no
// business logic of its own. Grounded on the teacher's cmd/server/main.go
// (gin engine, route groups, health check, env-driven port).
package main

import (
	"log"
	"net/http"
	"strconv"

	"villagecore/internal/catalog"
	"villagecore/internal/clock"
	"villagecore/internal/config"
	"villagecore/internal/domain"
	"villagecore/internal/events"
	"villagecore/internal/gateway"
	"villagecore/internal/logger"
	"villagecore/internal/middleware"
	"villagecore/internal/store"

	"github.com/gin-gonic/gin"
)

// corsMiddleware applies the permissive-for-local-development CORS headers
// the teacher's gin router configures via gin-contrib/cors. That package
// was never an actual teacher dependency (see DESIGN.md), so this restates
// the same headers directly.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Player-ID, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	cfg := config.Load()
	if err := logger.Init(&cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Shutdown()

	villageStore := store.NewMemoryStore()
	bus := events.NewInMemoryEventBus()
	defer bus.Close()
	middleware.LogDomainEvents(bus)

	gw := gateway.New(villageStore, clock.System{}, cfg.GameSpeed, cfg.MaxBuildQueue, bus)

	seedVillages(villageStore)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ZapLogger(), middleware.ZapRecovery(), corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/villages/:id", handleGetVillage(gw))
		api.GET("/villages/:id/movements", handleGetMovements(gw))
		api.POST("/villages/:id/build", handleBuild(gw))
		api.POST("/villages/:id/train", handleTrain(gw))
		api.POST("/villages/:id/attack", handleSend(gw, gateway.KindAttack))
		api.POST("/villages/:id/support", handleSend(gw, gateway.KindSupport))
		api.POST("/movements/:id/cancel", handleCancelSupport(gw))
	}

	log.Printf("village core API listening on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed to start: %v", err)
	}
}

// seedVillages creates a small starting map so the demonstration surface
// has something to query against on a fresh boot.
func seedVillages(s store.Store) {
	now := clock.System{}.Now()
	owner := "demo-player"
	v1 := domain.NewVillage(s.NextVillageID(), 500, 500, now)
	v1.OwnerPlayerID = &owner
	v1.Name = "Home"
	v1.Stock = domain.Resources{Wood: 1000, Clay: 1000, Iron: 1000}
	s.CreateVillage(v1)

	v2 := domain.NewVillage(s.NextVillageID(), 505, 498, now)
	v2.Name = "Barbarian Outpost"
	v2.Garrison = domain.Units{catalog.Swordsman: 5, catalog.Archer: 5}
	s.CreateVillage(v2)
}

func villageIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid village id"})
		return 0, false
	}
	return id, true
}

func handleGetVillage(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, ok := villageIDParam(c)
		if !ok {
			return
		}
		v, err := gw.GetVillagePrivate(c.Request.Context(), vid, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func handleGetMovements(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, ok := villageIDParam(c)
		if !ok {
			return
		}
		movements, err := gw.GetMovements(c.Request.Context(), vid, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, movements)
	}
}

func handleBuild(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, ok := villageIDParam(c)
		if !ok {
			return
		}
		var req buildRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kind, ok := parseBuildingKind(req.Building)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown building kind"})
			return
		}
		event, err := gw.ScheduleBuild(c.Request.Context(), vid, kind, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, event)
	}
}

func handleTrain(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, ok := villageIDParam(c)
		if !ok {
			return
		}
		var req trainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kind, ok := parseUnitKind(req.Unit)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit kind"})
			return
		}
		event, err := gw.ScheduleTrain(c.Request.Context(), vid, kind, req.Count, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, event)
	}
}

func handleSend(gw *gateway.Gateway, kind gateway.MovementKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, ok := villageIDParam(c)
		if !ok {
			return
		}
		var req sendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		units, err := req.toUnits()
		if err != nil {
			writeError(c, err)
			return
		}
		movement, err := gw.SendUnits(c.Request.Context(), vid, req.TargetVillageID, units, kind, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, movement)
	}
}

func handleCancelSupport(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		movementID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movement id"})
			return
		}
		m, err := gw.Store.GetMovement(movementID)
		if err != nil {
			writeError(c, err)
			return
		}
		movement, err := gw.CancelSupport(c.Request.Context(), m.OriginVillageID, movementID, userID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, movement)
	}
}
