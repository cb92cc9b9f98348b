package scoring

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crewdesk/crewdesk/src/dispatch/config"
	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
)

// MetricsProvider supplies the historical signals the engine needs per
// candidate. The metrics calculator implements it.
type MetricsProvider interface {
	// RecentPerformance returns the windowed performance composite. sampled
	// is false when the agent has no completed history in the window.
	RecentPerformance(ctx context.Context, agentID string, window, expected time.Duration) (score float64, sampled bool, err error)
	// MissionLoad counts the agent's open missions.
	MissionLoad(ctx context.Context, agentID string) (core.MissionLoad, error)
}

// Engine ranks candidate agents for a mission. It is stateless; every call
// works from the snapshot its providers return.
type Engine struct {
	registry registry.Registry
	cfg      config.Config
}

// NewEngine validates the weight configuration and returns an engine.
func NewEngine(reg registry.Registry, cfg config.Config) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", core.ErrInvalidInput)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = config.Default().MaxConcurrency
	}
	return &Engine{registry: reg, cfg: cfg}, nil
}

// ComputeAgentScores scores every candidate and returns them ranked, best
// first. Ties break on ascending agent ID so rankings are deterministic.
// History lookups fan out concurrently with a bounded limit; a candidate
// whose history source fails is scored with neutral defaults rather than
// failing the whole ranking. An empty candidate list yields an empty result.
func (e *Engine) ComputeAgentScores(ctx context.Context, mctx core.MissionContext, candidates []core.Agent, metrics MetricsProvider) ([]core.AgentScore, error) {
	if metrics == nil {
		return nil, fmt.Errorf("%w: nil metrics provider", core.ErrInvalidInput)
	}
	if mctx.Type == "" {
		return nil, fmt.Errorf("%w: mission context missing type", core.ErrInvalidInput)
	}
	if len(candidates) == 0 {
		return []core.AgentScore{}, nil
	}

	scores := make([]core.AgentScore, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrency)

	for i, cand := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = e.scoreCandidate(gctx, mctx, cand, metrics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].AgentID < scores[j].AgentID
	})
	return scores, nil
}

func (e *Engine) scoreCandidate(ctx context.Context, mctx core.MissionContext, cand core.Agent, metrics MetricsProvider) core.AgentScore {
	profile, known := e.registry.Lookup(cand.ID)

	factors := core.FactorScores{
		Expertise: expertiseScore(profile, known, mctx),
		Context:   contextFitScore(cand, mctx.Requirements),
	}
	degraded := false

	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	perf, sampled, err := metrics.RecentPerformance(fetchCtx, cand.ID, e.cfg.PerformanceWindow, e.cfg.ExpectedDuration(mctx.Complexity))
	if err != nil {
		log.Printf("scoring: performance lookup for %s degraded: %v", cand.ID, err)
		perf, sampled = e.cfg.PerformanceFill, true
		degraded = true
	} else if !sampled {
		perf = e.cfg.PerformanceFill
	}
	factors.Performance = core.Clamp01(perf)

	load, err := metrics.MissionLoad(fetchCtx, cand.ID)
	if err != nil {
		log.Printf("scoring: mission load lookup for %s degraded: %v", cand.ID, err)
		load = core.MissionLoad{}
		degraded = true
	}
	factors.Availability = availabilityScore(load)
	factors.Workload = workloadScore(load)

	w := e.cfg.Weights
	total := factors.Expertise*w.Expertise +
		factors.Performance*w.Performance +
		factors.Availability*w.Availability +
		factors.Context*w.Context +
		factors.Workload*w.Workload

	return core.AgentScore{
		AgentID:   cand.ID,
		Score:     core.Clamp01(total),
		Factors:   factors,
		Reasoning: buildReasoning(factors, matchedDomains(cand, mctx), degraded),
		Degraded:  degraded,
	}
}
