// Seeds a development database with a service client, an agent catalog, and
// sample mission history for the dispatch API.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewdesk/crewdesk/src/CDApi/webserver"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
	"github.com/crewdesk/crewdesk/src/shared/data"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

func main() {
	db := data.MustMySQL(data.GetMySQLDSN())

	if err := missions.AutoMigrate(db); err != nil {
		log.Fatalf("migrate missions: %v", err)
	}
	if err := db.AutoMigrate(&registry.AgentRow{}, &webserver.ServiceClient{}); err != nil {
		log.Fatalf("migrate catalog: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("dev-secret-change-me"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	db.Save(&webserver.ServiceClient{
		ID:         "orchestrator-dev",
		Name:       "Dev Orchestrator",
		SecretHash: string(hash),
		Active:     true,
	})

	agents := []registry.AgentRow{
		{ID: "content-writer", Name: "Content Writer", Domains: "content,writing,creative", Strengths: "seo,long-form,editing", Keywords: "seo,blog,content,copy", Active: true},
		{ID: "data-analyst", Name: "Data Analyst", Domains: "analysis,data,research", Strengths: "statistics,reporting", Keywords: "data,charts,sql", Active: true},
		{ID: "automation-eng", Name: "Automation Engineer", Domains: "automation,engineering,technical", Strengths: "pipelines,integration", Keywords: "code,api,workflow", Active: true},
	}
	for _, a := range agents {
		db.Save(&a)
	}

	now := time.Now()
	durations := []time.Duration{time.Hour, 4 * time.Hour, 20 * time.Hour}
	qualities := []float64{0.9, 0.6, 0.3}
	for i, a := range agents {
		for j, dur := range durations {
			created := now.Add(-time.Duration(j+1) * 72 * time.Hour)
			completed := created.Add(dur)
			sat := 0.8
			q := qualities[(i+j)%len(qualities)]
			m := missions.Mission{
				ID:           uuid.NewString(),
				AgentID:      a.ID,
				Status:       "completed",
				Type:         "content",
				CreatedAt:    created,
				CompletedAt:  &completed,
				Satisfaction: &sat,
			}
			db.Save(&m)
			db.Save(&missions.DeliverableRow{MissionID: m.ID, Quality: &q, Structure: "good"})
		}
	}

	// The API caches listings in Redis; writes behind its back must drop them.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	cache := missions.NewCached(missions.NewMySQL(db), data.MustRedis(redisURL), 0)
	ctx := context.Background()
	for _, a := range agents {
		cache.Invalidate(ctx, a.ID)
	}

	log.Printf("seeded %d agents with %d missions each", len(agents), len(durations))
}
