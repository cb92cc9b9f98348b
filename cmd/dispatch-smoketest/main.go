package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewdesk/crewdesk/src/dispatch/config"
	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/metrics"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
	"github.com/crewdesk/crewdesk/src/dispatch/scoring"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

var (
	catalogFlag  = flag.String("catalog", "", "Path to agent catalog YAML (empty = built-in sample)")
	typeFlag     = flag.String("type", "content", "Mission type: content|analysis|automation|research|creative")
	keywordsFlag = flag.String("keywords", "seo,blog", "Comma-separated mission keywords")
	timeoutFlag  = flag.Duration("timeout", 10*time.Second, "Overall timeout")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	var reg *registry.Static
	if *catalogFlag != "" {
		var err error
		reg, err = registry.LoadYAML(*catalogFlag)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
	} else {
		reg = registry.NewStatic(sampleAgents())
	}

	cfg := config.Default()
	store := seedStore(reg.Agents())
	calc := metrics.NewCalculator(store, cfg)
	engine, err := scoring.NewEngine(reg, cfg)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	mctx := core.MissionContext{
		Type:       core.MissionType(*typeFlag),
		Complexity: core.ComplexityMedium,
		Urgency:    core.UrgencyMedium,
		Domains:    []string{*typeFlag},
		Keywords:   splitCSV(*keywordsFlag),
	}

	scores, err := engine.ComputeAgentScores(ctx, mctx, reg.Agents(), calc)
	if err != nil {
		log.Fatalf("scoring: %v", err)
	}

	fmt.Println("== Ranking ==")
	for i, s := range scores {
		fmt.Printf("%d. %-16s score=%.3f expertise=%.2f perf=%.2f avail=%.2f ctx=%.2f load=%.2f\n",
			i+1, s.AgentID, s.Score,
			s.Factors.Expertise, s.Factors.Performance, s.Factors.Availability,
			s.Factors.Context, s.Factors.Workload)
		for _, r := range s.Reasoning {
			fmt.Printf("   - %s\n", r)
		}
	}

	sys, err := calc.CalculateSystemMetrics(ctx)
	if err != nil {
		log.Fatalf("system metrics: %v", err)
	}
	fmt.Println("\n== System ==")
	fmt.Printf("missions=%d active=%d roi=%.1f%% efficiency=%.2f health=%.2f savings=%.0f gain=%.1f%%\n",
		sys.TotalMissions, sys.ActiveMissions, sys.AverageROI, sys.AverageEfficiency,
		sys.SystemHealth, sys.CostSavings, sys.ProductivityGain)
}

func sampleAgents() []core.Agent {
	return []core.Agent{
		{
			ID: "content-writer", Name: "Content Writer",
			Domains:   []string{"content", "writing", "creative"},
			Strengths: []string{"seo", "long-form", "editing"},
			Keywords:  []string{"seo", "blog", "content", "copy"},
		},
		{
			ID: "data-analyst", Name: "Data Analyst",
			Domains:   []string{"analysis", "data", "research"},
			Strengths: []string{"statistics", "reporting"},
			Keywords:  []string{"data", "charts", "sql"},
		},
		{
			ID: "automation-eng", Name: "Automation Engineer",
			Domains:   []string{"automation", "engineering", "technical"},
			Strengths: []string{"pipelines", "integration"},
			Keywords:  []string{"code", "api", "workflow"},
		},
	}
}

func seedStore(agents []core.Agent) *missions.Memory {
	store := missions.NewMemory()
	now := time.Now()
	durations := []time.Duration{time.Hour, 4 * time.Hour, 20 * time.Hour}
	qualities := []float64{0.9, 0.6, 0.3}

	for i, agent := range agents {
		for j := range durations {
			created := now.Add(-time.Duration(j+1) * 48 * time.Hour)
			completed := created.Add(durations[j])
			q := qualities[(i+j)%len(qualities)]
			sat := 0.8
			store.Put(core.MissionRecord{
				ID:           uuid.NewString(),
				AgentID:      agent.ID,
				Status:       core.MissionStatusCompleted,
				Type:         core.MissionTypeContent,
				CreatedAt:    created,
				CompletedAt:  &completed,
				Satisfaction: &sat,
				Deliverables: []core.Deliverable{{Quality: &q}},
			})
		}
	}
	// one open mission so availability numbers move
	store.Put(core.MissionRecord{
		ID:        uuid.NewString(),
		AgentID:   agents[0].ID,
		Status:    core.MissionStatusInProgress,
		CreatedAt: now.Add(-time.Hour),
	})
	return store
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
