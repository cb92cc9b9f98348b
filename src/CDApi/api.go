package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crewdesk/crewdesk/src/CDApi/config"
	"github.com/crewdesk/crewdesk/src/CDApi/webserver"
	dispatchcfg "github.com/crewdesk/crewdesk/src/dispatch/config"
	"github.com/crewdesk/crewdesk/src/dispatch/metrics"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
	"github.com/crewdesk/crewdesk/src/dispatch/scoring"
	"github.com/crewdesk/crewdesk/src/shared/data"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg := config.Load()
	db := data.MustMySQL(cfg.MySQLDSN)

	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}
	if err := missions.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := db.AutoMigrate(&registry.AgentRow{}, &webserver.ServiceClient{}, &data.Setting{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	// Catalog comes from a YAML file when configured, from MySQL otherwise.
	var reg *registry.Static
	var err error
	if cfg.CatalogPath != "" {
		reg, err = registry.LoadYAML(cfg.CatalogPath)
	} else {
		reg, err = registry.LoadDB(db)
	}
	if err != nil {
		log.Fatalf("agent catalog: %v", err)
	}
	if len(reg.Agents()) == 0 {
		log.Printf("Warning: agent catalog is empty, all scoring calls will return empty rankings")
	}

	dcfg, err := dispatchcfg.Load()
	if err != nil {
		log.Fatalf("dispatch config: %v", err)
	}

	cacheTTL, err := time.ParseDuration(cfg.CacheTTL)
	if err != nil {
		cacheTTL = 30 * time.Second
	}
	store := missions.NewCached(missions.NewMySQL(db), rdb, cacheTTL)

	calc := metrics.NewCalculator(store, dcfg)
	engine, err := scoring.NewEngine(reg, dcfg)
	if err != nil {
		log.Fatalf("scoring engine: %v", err)
	}

	router := webserver.New(cfg, db, rdb, webserver.Deps{
		Engine:     engine,
		Calculator: calc,
		Registry:   reg,
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("CrewDesk dispatch API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
