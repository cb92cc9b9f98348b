package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/crewdesk/crewdesk/src/CDApi/config"
	"github.com/crewdesk/crewdesk/src/dispatch/metrics"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
	"github.com/crewdesk/crewdesk/src/dispatch/scoring"
)

// Deps bundles the dispatch core pieces the handlers call into.
type Deps struct {
	Engine     *scoring.Engine
	Calculator *metrics.Calculator
	Registry   registry.Registry
}

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, deps Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, deps)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	scoreH := NewScores(deps.Engine, deps.Calculator, deps.Registry, rdb)
	metricsH := NewMetrics(deps.Calculator)
	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/token", authH.Token)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
		secured.POST("/scores", scoreH.Compute)
		secured.GET("/metrics/missions/:id", metricsH.Mission)
		secured.GET("/metrics/agents/:id", metricsH.Agent)
		secured.GET("/metrics/system", metricsH.System)
	}
}
