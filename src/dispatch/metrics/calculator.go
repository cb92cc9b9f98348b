package metrics

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/config"
	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

// Calculator derives mission, agent, and system performance numbers from the
// mission store. It owns no state beyond its configuration; every call reads
// a fresh snapshot.
type Calculator struct {
	store missions.Store
	cfg   config.Config
}

// NewCalculator wraps a mission store.
func NewCalculator(store missions.Store, cfg config.Config) *Calculator {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = config.Default().MaxConcurrency
	}
	return &Calculator{store: store, cfg: cfg}
}

// CalculateMissionMetrics summarizes one mission. Unknown IDs surface
// core.ErrNotFound; store failures surface core.ErrStoreUnavailable.
func (c *Calculator) CalculateMissionMetrics(ctx context.Context, missionID string) (core.MissionMetrics, error) {
	rec, err := c.store.GetMission(ctx, missionID)
	if err != nil {
		return core.MissionMetrics{}, err
	}

	quality := MissionQuality(rec)
	satisfaction := MissionSatisfaction(rec)

	var rawSum float64
	for _, d := range rec.Deliverables {
		if d.Quality != nil {
			rawSum += *d.Quality
		} else {
			rawSum += neutralDefault
		}
	}
	step := map[string]any{"deliverables": len(rec.Deliverables)}
	if n := len(rec.Deliverables); n > 0 {
		step["averageRawQuality"] = rawSum / float64(n)
	}

	return core.MissionMetrics{
		MissionID:    rec.ID,
		Duration:     MissionDuration(rec),
		Quality:      quality,
		Satisfaction: satisfaction,
		Cost:         c.missionCost(rec),
		ROI:          c.missionROI(rec),
		Efficiency:   c.missionEfficiency(rec),
		AgentPerformance: map[string]float64{
			rec.AgentID: core.Clamp01((quality + satisfaction) / 2),
		},
		StepMetrics: step,
	}, nil
}

// CalculateAgentMetrics aggregates one agent's history. An agent with no
// missions gets zeroed aggregates, not an error.
func (c *Calculator) CalculateAgentMetrics(ctx context.Context, agentID string) (core.AgentMetrics, error) {
	recs, err := c.store.ListMissions(ctx, missions.Filter{AgentID: agentID})
	if err != nil {
		return core.AgentMetrics{}, err
	}
	return c.aggregateAgent(agentID, recs), nil
}

// aggregateAgent derives aggregates from an already-fetched history slice.
// Failed and cancelled missions count toward totals and the success-rate
// denominator but contribute nothing to the quality/duration averages.
func (c *Calculator) aggregateAgent(agentID string, recs []core.MissionRecord) core.AgentMetrics {
	m := core.AgentMetrics{AgentID: agentID, TotalMissions: len(recs)}
	if len(recs) == 0 {
		return m
	}

	completed := make([]core.MissionRecord, 0, len(recs))
	for _, rec := range recs {
		if rec.Status == core.MissionStatusCompleted {
			completed = append(completed, rec)
		}
	}
	m.CompletedMissions = len(completed)
	m.SuccessRate = core.Clamp01(float64(len(completed)) / float64(len(recs)))
	if len(completed) == 0 {
		return m
	}

	var qualitySum, satSum float64
	var durSum time.Duration
	typeCounts := map[core.MissionType]int{}
	for _, rec := range completed {
		qualitySum += MissionQuality(rec)
		satSum += MissionSatisfaction(rec)
		durSum += MissionDuration(rec)
		if rec.Type != "" {
			typeCounts[rec.Type]++
		}
	}
	n := float64(len(completed))
	m.AverageQuality = qualitySum / n
	m.AverageSatisfaction = satSum / n
	m.AverageDuration = durSum / time.Duration(len(completed))
	m.Specializations = topTypes(typeCounts, 3)
	m.PerformanceTrend = qualityTrend(completed)
	return m
}

// qualityTrend compares mean quality of the recent half of the last ten
// completed missions against the older half. Fewer than two missions give no
// signal.
func qualityTrend(completed []core.MissionRecord) float64 {
	recs := make([]core.MissionRecord, len(completed))
	copy(recs, completed)
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if len(recs) > 10 {
		recs = recs[:10]
	}
	if len(recs) < 2 {
		return 0
	}

	mid := len(recs) / 2
	mean := func(rs []core.MissionRecord) float64 {
		var sum float64
		for _, r := range rs {
			sum += MissionQuality(r)
		}
		return sum / float64(len(rs))
	}
	return mean(recs[:mid]) - mean(recs[mid:])
}

func topTypes(counts map[core.MissionType]int, limit int) []string {
	type entry struct {
		t core.MissionType
		n int
	}
	entries := make([]entry, 0, len(counts))
	for t, n := range counts {
		entries = append(entries, entry{t, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].t < entries[j].t
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.t))
	}
	return out
}

// CalculateSystemMetrics aggregates across every mission in the store.
// Productivity gain compares actual hours against one expected workday per
// completed mission; open and failed missions carry no hours and are left
// out of that baseline. The top-agent sub-computations fan out concurrently;
// an agent whose history read fails is skipped and logged rather than
// failing the whole call.
func (c *Calculator) CalculateSystemMetrics(ctx context.Context) (core.SystemMetrics, error) {
	recs, err := c.store.ListMissions(ctx, missions.Filter{})
	if err != nil {
		return core.SystemMetrics{}, err
	}

	out := core.SystemMetrics{TotalMissions: len(recs)}
	if len(recs) == 0 {
		return out, nil
	}

	var completedCount int
	var roiSum, effSum, qualitySum, satSum float64
	var actualHours float64
	agentIDs := map[string]struct{}{}

	for _, rec := range recs {
		if rec.AgentID != "" {
			agentIDs[rec.AgentID] = struct{}{}
		}
		switch rec.Status {
		case core.MissionStatusPending, core.MissionStatusInProgress:
			out.ActiveMissions++
		case core.MissionStatusCompleted:
			completedCount++
			roiSum += c.missionROI(rec)
			effSum += c.missionEfficiency(rec)
			qualitySum += MissionQuality(rec)
			satSum += MissionSatisfaction(rec)
			hours := MissionDuration(rec).Hours()
			actualHours += hours
			out.CostSavings += hours * (c.cfg.HumanHourlyRate - c.cfg.AIHourlyRate)
		}
	}

	if completedCount > 0 {
		n := float64(completedCount)
		out.AverageROI = roiSum / n
		out.AverageEfficiency = effSum / n

		completionRate := n / float64(len(recs))
		out.SystemHealth = core.Clamp01((completionRate + qualitySum/n + satSum/n) / 3)

		expectedHours := n * c.cfg.ExpectedDefault.Hours()
		if expectedHours > 0 {
			out.ProductivityGain = (expectedHours - actualHours) / expectedHours * 100
		}
	}

	out.TopPerformingAgents = c.topAgents(ctx, agentIDs)
	return out, nil
}

func (c *Calculator) topAgents(ctx context.Context, agentIDs map[string]struct{}) []core.AgentMetrics {
	results := make([]core.AgentMetrics, 0, len(agentIDs))
	sem := make(chan struct{}, c.cfg.MaxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for id := range agentIDs {
		wg.Add(1)
		go func(agentID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			am, err := c.CalculateAgentMetrics(ctx, agentID)
			if err != nil {
				log.Printf("system metrics: skipping agent %s: %v", agentID, err)
				return
			}
			mu.Lock()
			results = append(results, am)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		si := results[i].AverageQuality * results[i].SuccessRate
		sj := results[j].AverageQuality * results[j].SuccessRate
		if si != sj {
			return si > sj
		}
		return results[i].AgentID < results[j].AgentID
	})
	if len(results) > 5 {
		results = results[:5]
	}
	return results
}
