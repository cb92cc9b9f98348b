package metrics

import (
	"context"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

// RecentPerformance scores an agent's completed missions inside the lookback
// window. Each mission contributes the mean of its output quality, its time
// efficiency against the expected duration, and its satisfaction rating.
// sampled is false when the window holds no history.
func (c *Calculator) RecentPerformance(ctx context.Context, agentID string, window, expected time.Duration) (float64, bool, error) {
	recs, err := c.store.ListMissions(ctx, missions.Filter{
		AgentID:  agentID,
		Statuses: []core.MissionStatus{core.MissionStatusCompleted},
		Since:    time.Now().Add(-window),
	})
	if err != nil {
		return 0, false, err
	}
	if len(recs) == 0 {
		return 0, false, nil
	}

	var sum float64
	for _, rec := range recs {
		timeEff := 1.0
		if hours := MissionDuration(rec).Hours(); hours > 0 {
			timeEff = expected.Hours() / hours
			if timeEff > 1 {
				timeEff = 1
			}
		}
		composite := (MissionQuality(rec) + timeEff + MissionSatisfaction(rec)) / 3
		sum += core.Clamp01(composite)
	}
	return sum / float64(len(recs)), true, nil
}

// MissionLoad counts an agent's open missions by state.
func (c *Calculator) MissionLoad(ctx context.Context, agentID string) (core.MissionLoad, error) {
	recs, err := c.store.ListMissions(ctx, missions.Filter{
		AgentID:  agentID,
		Statuses: []core.MissionStatus{core.MissionStatusPending, core.MissionStatusInProgress},
	})
	if err != nil {
		return core.MissionLoad{}, err
	}

	var load core.MissionLoad
	for _, rec := range recs {
		switch rec.Status {
		case core.MissionStatusPending:
			load.Pending++
		case core.MissionStatusInProgress:
			load.InProgress++
		}
	}
	return load, nil
}
