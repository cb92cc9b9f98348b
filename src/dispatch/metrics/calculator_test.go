package metrics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/config"
	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/shared/missions"
)

func newCalc(store missions.Store) *Calculator {
	return NewCalculator(store, config.Default())
}

func completedMission(id, agentID string, created time.Time, dur time.Duration, quality, satisfaction float64) core.MissionRecord {
	done := created.Add(dur)
	return core.MissionRecord{
		ID:           id,
		AgentID:      agentID,
		Status:       core.MissionStatusCompleted,
		Type:         core.MissionTypeContent,
		CreatedAt:    created,
		CompletedAt:  &done,
		Satisfaction: &satisfaction,
		Deliverables: []core.Deliverable{{Quality: &quality}},
	}
}

func TestCalculateMissionMetricsNotFound(t *testing.T) {
	calc := newCalc(missions.NewMemory())
	_, err := calc.CalculateMissionMetrics(context.Background(), "nope")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestCalculateMissionMetricsZeroDeliverables(t *testing.T) {
	store := missions.NewMemory()
	store.Put(core.MissionRecord{
		ID:        "m1",
		AgentID:   "a1",
		Status:    core.MissionStatusCompleted,
		CreatedAt: time.Now().Add(-time.Hour),
	})
	calc := newCalc(store)

	got, err := calc.CalculateMissionMetrics(context.Background(), "m1")
	if err != nil {
		t.Fatalf("CalculateMissionMetrics: %v", err)
	}
	if got.Quality != 0.7 {
		t.Errorf("quality = %v, want exactly 0.7", got.Quality)
	}
}

func TestMissionROIZeroCost(t *testing.T) {
	store := missions.NewMemory()
	// Never completed, so duration and cost are zero.
	store.Put(core.MissionRecord{
		ID:        "open",
		AgentID:   "a1",
		Status:    core.MissionStatusInProgress,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	calc := newCalc(store)

	got, err := calc.CalculateMissionMetrics(context.Background(), "open")
	if err != nil {
		t.Fatalf("CalculateMissionMetrics: %v", err)
	}
	if got.Cost != 0 {
		t.Fatalf("cost = %v, want 0", got.Cost)
	}
	if got.ROI != 0 || math.IsNaN(got.ROI) || math.IsInf(got.ROI, 0) {
		t.Errorf("roi = %v, want exactly 0", got.ROI)
	}
}

func TestCalculateMissionMetricsHandComputed(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store := missions.NewMemory()
	store.Put(completedMission("m1", "a1", created, 4*time.Hour, 0.6, 0.8))
	calc := newCalc(store)

	got, err := calc.CalculateMissionMetrics(context.Background(), "m1")
	if err != nil {
		t.Fatalf("CalculateMissionMetrics: %v", err)
	}

	// cost = 4h * 5 = 20
	if math.Abs(got.Cost-20) > 1e-9 {
		t.Errorf("cost = %v, want 20", got.Cost)
	}
	// roi = ((50*8*0.7) - 20) / 20 * 100 = 1300
	if math.Abs(got.ROI-1300) > 1e-9 {
		t.Errorf("roi = %v, want 1300", got.ROI)
	}
	// efficiency = (0.6 + min(1, 8/4)) / 2 = 0.8
	if math.Abs(got.Efficiency-0.8) > 1e-9 {
		t.Errorf("efficiency = %v, want 0.8", got.Efficiency)
	}
	if v := got.AgentPerformance["a1"]; math.Abs(v-0.7) > 1e-9 {
		t.Errorf("agent performance = %v, want 0.7", v)
	}
}

func TestCalculateAgentMetricsNoMissions(t *testing.T) {
	calc := newCalc(missions.NewMemory())
	got, err := calc.CalculateAgentMetrics(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("no-history agents must not error: %v", err)
	}
	if got.TotalMissions != 0 || got.SuccessRate != 0 || got.AverageQuality != 0 {
		t.Errorf("want zeroed aggregates, got %+v", got)
	}
}

func TestCalculateAgentMetricsFailedAndCancelledPolicy(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	store := missions.NewMemory()
	store.Put(completedMission("m1", "a1", base, 2*time.Hour, 0.8, 0.9))
	store.Put(completedMission("m2", "a1", base.Add(24*time.Hour), 2*time.Hour, 0.6, 0.7))
	store.Put(core.MissionRecord{
		ID: "m3", AgentID: "a1", Status: core.MissionStatusFailed,
		CreatedAt: base.Add(48 * time.Hour),
	})
	store.Put(core.MissionRecord{
		ID: "m4", AgentID: "a1", Status: core.MissionStatusCancelled,
		CreatedAt: base.Add(72 * time.Hour),
	})
	calc := newCalc(store)

	got, err := calc.CalculateAgentMetrics(context.Background(), "a1")
	if err != nil {
		t.Fatalf("CalculateAgentMetrics: %v", err)
	}
	if got.TotalMissions != 4 {
		t.Errorf("total = %d, want 4 (failed and cancelled count)", got.TotalMissions)
	}
	if got.CompletedMissions != 2 {
		t.Errorf("completed = %d, want 2", got.CompletedMissions)
	}
	if math.Abs(got.SuccessRate-0.5) > 1e-9 {
		t.Errorf("success rate = %v, want 0.5 (failures in denominator)", got.SuccessRate)
	}
	// Only completed missions feed the quality average.
	if math.Abs(got.AverageQuality-0.7) > 1e-9 {
		t.Errorf("average quality = %v, want 0.7", got.AverageQuality)
	}
	if got.AverageDuration != 2*time.Hour {
		t.Errorf("average duration = %v, want 2h", got.AverageDuration)
	}
}

func TestCalculateAgentMetricsTrend(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	store := missions.NewMemory()
	// Older pair at 0.5, newer pair at 0.9: trend should be +0.4.
	store.Put(completedMission("m1", "a1", base, time.Hour, 0.5, 0.7))
	store.Put(completedMission("m2", "a1", base.Add(1*time.Hour), time.Hour, 0.5, 0.7))
	store.Put(completedMission("m3", "a1", base.Add(2*time.Hour), time.Hour, 0.9, 0.7))
	store.Put(completedMission("m4", "a1", base.Add(3*time.Hour), time.Hour, 0.9, 0.7))
	calc := newCalc(store)

	got, err := calc.CalculateAgentMetrics(context.Background(), "a1")
	if err != nil {
		t.Fatalf("CalculateAgentMetrics: %v", err)
	}
	if math.Abs(got.PerformanceTrend-0.4) > 1e-9 {
		t.Errorf("trend = %v, want 0.4", got.PerformanceTrend)
	}
}

func TestCalculateAgentMetricsIdempotent(t *testing.T) {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	store := missions.NewMemory()
	store.Put(completedMission("m1", "a1", base, 3*time.Hour, 0.8, 0.9))
	store.Put(completedMission("m2", "a1", base.Add(time.Hour), 5*time.Hour, 0.4, 0.6))
	calc := newCalc(store)

	first, err := calc.CalculateAgentMetrics(context.Background(), "a1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := calc.CalculateAgentMetrics(context.Background(), "a1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregates changed without data change:\n%+v\n%+v", first, second)
	}
}

func TestCalculateSystemMetricsHandComputed(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store := missions.NewMemory()
	store.Put(completedMission("m1", "a1", created, 1*time.Hour, 0.9, 0.8))
	store.Put(completedMission("m2", "a2", created.Add(time.Hour), 4*time.Hour, 0.6, 0.8))
	store.Put(completedMission("m3", "a3", created.Add(2*time.Hour), 20*time.Hour, 0.3, 0.8))
	calc := newCalc(store)

	got, err := calc.CalculateSystemMetrics(context.Background())
	if err != nil {
		t.Fatalf("CalculateSystemMetrics: %v", err)
	}

	if got.TotalMissions != 3 || got.ActiveMissions != 0 {
		t.Fatalf("counts = %d/%d, want 3/0", got.TotalMissions, got.ActiveMissions)
	}
	// Per-mission ROI: 6700, 1300, 120 -> mean 2706.66..
	if math.Abs(got.AverageROI-8120.0/3) > 1e-6 {
		t.Errorf("averageROI = %v, want %v", got.AverageROI, 8120.0/3)
	}
	// Efficiencies: 0.95, 0.8, 0.35 -> mean 0.7
	if math.Abs(got.AverageEfficiency-0.7) > 1e-9 {
		t.Errorf("averageEfficiency = %v, want 0.7", got.AverageEfficiency)
	}
	// health = (1.0 + 0.6 + 0.8) / 3 = 0.8
	if math.Abs(got.SystemHealth-0.8) > 1e-9 {
		t.Errorf("systemHealth = %v, want 0.8", got.SystemHealth)
	}
	// savings = 25h * (50 - 5) = 1125
	if math.Abs(got.CostSavings-1125) > 1e-9 {
		t.Errorf("costSavings = %v, want 1125", got.CostSavings)
	}
	// gain = (24 - 25) / 24 * 100
	if math.Abs(got.ProductivityGain-(-100.0/24)) > 1e-6 {
		t.Errorf("productivityGain = %v, want %v", got.ProductivityGain, -100.0/24)
	}
	if len(got.TopPerformingAgents) != 3 {
		t.Fatalf("top agents = %d, want 3", len(got.TopPerformingAgents))
	}
	if got.TopPerformingAgents[0].AgentID != "a1" {
		t.Errorf("best agent = %s, want a1", got.TopPerformingAgents[0].AgentID)
	}
}

func TestCalculateSystemMetricsEmptyStore(t *testing.T) {
	calc := newCalc(missions.NewMemory())
	got, err := calc.CalculateSystemMetrics(context.Background())
	if err != nil {
		t.Fatalf("CalculateSystemMetrics: %v", err)
	}
	if got.TotalMissions != 0 || got.SystemHealth != 0 || len(got.TopPerformingAgents) != 0 {
		t.Errorf("want zeroed system metrics, got %+v", got)
	}
}

type failingStore struct{}

func (failingStore) GetMission(context.Context, string) (core.MissionRecord, error) {
	return core.MissionRecord{}, fmt.Errorf("%w: connection refused", core.ErrStoreUnavailable)
}

func (failingStore) ListMissions(context.Context, missions.Filter) ([]core.MissionRecord, error) {
	return nil, fmt.Errorf("%w: connection refused", core.ErrStoreUnavailable)
}

func TestStoreUnavailablePropagates(t *testing.T) {
	calc := newCalc(failingStore{})
	if _, err := calc.CalculateMissionMetrics(context.Background(), "m1"); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Errorf("mission metrics: want ErrStoreUnavailable, got %v", err)
	}
	if _, err := calc.CalculateSystemMetrics(context.Background()); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Errorf("system metrics: want ErrStoreUnavailable, got %v", err)
	}
}

func TestRecentPerformanceComposite(t *testing.T) {
	now := time.Now()
	store := missions.NewMemory()
	// quality 0.9, 4h against 8h expected -> timeEff 1 capped, satisfaction 0.6
	store.Put(completedMission("m1", "a1", now.Add(-48*time.Hour), 4*time.Hour, 0.9, 0.6))
	calc := newCalc(store)

	score, sampled, err := calc.RecentPerformance(context.Background(), "a1", 30*24*time.Hour, 8*time.Hour)
	if err != nil {
		t.Fatalf("RecentPerformance: %v", err)
	}
	if !sampled {
		t.Fatal("expected sampled history")
	}
	want := (0.9 + 1.0 + 0.6) / 3
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestRecentPerformanceWindowExcludesOldMissions(t *testing.T) {
	now := time.Now()
	store := missions.NewMemory()
	store.Put(completedMission("old", "a1", now.Add(-90*24*time.Hour), time.Hour, 0.2, 0.2))
	calc := newCalc(store)

	_, sampled, err := calc.RecentPerformance(context.Background(), "a1", 30*24*time.Hour, 8*time.Hour)
	if err != nil {
		t.Fatalf("RecentPerformance: %v", err)
	}
	if sampled {
		t.Error("missions outside the window must not be sampled")
	}
}

func TestMissionLoadCounts(t *testing.T) {
	now := time.Now()
	store := missions.NewMemory()
	store.Put(core.MissionRecord{ID: "p1", AgentID: "a1", Status: core.MissionStatusPending, CreatedAt: now})
	store.Put(core.MissionRecord{ID: "p2", AgentID: "a1", Status: core.MissionStatusPending, CreatedAt: now})
	store.Put(core.MissionRecord{ID: "w1", AgentID: "a1", Status: core.MissionStatusInProgress, CreatedAt: now})
	store.Put(completedMission("done", "a1", now.Add(-4*time.Hour), time.Hour, 0.9, 0.9))
	calc := newCalc(store)

	load, err := calc.MissionLoad(context.Background(), "a1")
	if err != nil {
		t.Fatalf("MissionLoad: %v", err)
	}
	if load.Pending != 2 || load.InProgress != 1 {
		t.Errorf("load = %+v, want pending=2 in_progress=1", load)
	}
	if load.Active() != 3 {
		t.Errorf("active = %d, want 3", load.Active())
	}
}
