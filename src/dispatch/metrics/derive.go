package metrics

import (
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// neutralDefault fills in quality and satisfaction when the store has no
// signal for a mission.
const neutralDefault = 0.7

// MissionQuality scores a mission's output. Missions without deliverables get
// the neutral default. Each deliverable starts from its recorded quality (or
// the default), earns +0.1 for substantial content and +0.1 for good
// structure, and is capped at 1.0 before averaging.
func MissionQuality(rec core.MissionRecord) float64 {
	if len(rec.Deliverables) == 0 {
		return neutralDefault
	}
	var sum float64
	for _, d := range rec.Deliverables {
		q := neutralDefault
		if d.Quality != nil {
			q = core.Clamp01(*d.Quality)
		}
		if len(d.Content) > 100 {
			q += 0.1
		}
		if d.Structure == "good" {
			q += 0.1
		}
		sum += core.Clamp01(q)
	}
	return sum / float64(len(rec.Deliverables))
}

// MissionSatisfaction returns the recorded satisfaction or the neutral
// default when the caller never rated the mission.
func MissionSatisfaction(rec core.MissionRecord) float64 {
	if rec.Satisfaction == nil {
		return neutralDefault
	}
	return core.Clamp01(*rec.Satisfaction)
}

// MissionDuration is wall time from creation to completion, zero while the
// mission is still open.
func MissionDuration(rec core.MissionRecord) time.Duration {
	if rec.CompletedAt == nil {
		return 0
	}
	d := rec.CompletedAt.Sub(rec.CreatedAt)
	if d < 0 {
		return 0
	}
	return d
}

func (c *Calculator) missionCost(rec core.MissionRecord) float64 {
	return MissionDuration(rec).Hours() * c.cfg.AIHourlyRate
}

// missionROI estimates return against an equivalent human workday, as a
// signed percentage. Zero-cost missions yield zero, never a division blowup.
func (c *Calculator) missionROI(rec core.MissionRecord) float64 {
	cost := c.missionCost(rec)
	if cost == 0 {
		return 0
	}
	value := c.cfg.HumanHourlyRate * c.cfg.HumanWorkday *
		(MissionQuality(rec) + MissionSatisfaction(rec)) / 2
	return (value - cost) / cost * 100
}

// missionEfficiency blends output quality with time performance against the
// default expected duration. The hour floor of 1 guards short missions.
func (c *Calculator) missionEfficiency(rec core.MissionRecord) float64 {
	hours := MissionDuration(rec).Hours()
	if hours < 1 {
		hours = 1
	}
	timeScore := c.cfg.ExpectedDefault.Hours() / hours
	if timeScore > 1 {
		timeScore = 1
	}
	return core.Clamp01((MissionQuality(rec) + timeScore) / 2)
}
