package missions

import (
	"strings"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

func TestListKeyBucketsSince(t *testing.T) {
	c := NewCached(NewMemory(), nil, time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f1 := Filter{AgentID: "a1", Since: base.Add(3 * time.Second)}
	f2 := Filter{AgentID: "a1", Since: base.Add(40 * time.Second)}
	if c.listKey(f1) != c.listKey(f2) {
		t.Error("lookbacks inside one TTL bucket must share a cache key")
	}

	f3 := Filter{AgentID: "a1", Since: base.Add(90 * time.Second)}
	if c.listKey(f1) == c.listKey(f3) {
		t.Error("lookbacks in different TTL buckets must not share a cache key")
	}
}

func TestListKeyScopedByAgent(t *testing.T) {
	c := NewCached(NewMemory(), nil, 30*time.Second)

	agentKey := c.listKey(Filter{AgentID: "a1"})
	if !strings.HasPrefix(agentKey, "dispatch:missions:agent:a1:") {
		t.Errorf("agent listing key %q lacks agent scope", agentKey)
	}

	allKey := c.listKey(Filter{})
	if !strings.HasPrefix(allKey, "dispatch:missions:all:") {
		t.Errorf("system listing key %q lacks the all scope", allKey)
	}

	other := c.listKey(Filter{AgentID: "a2"})
	if agentKey == other {
		t.Error("different agents must not share a cache key")
	}
}

func TestListKeyVariesByStatuses(t *testing.T) {
	c := NewCached(NewMemory(), nil, 30*time.Second)

	open := c.listKey(Filter{AgentID: "a1", Statuses: []core.MissionStatus{core.MissionStatusPending}})
	done := c.listKey(Filter{AgentID: "a1", Statuses: []core.MissionStatus{core.MissionStatusCompleted}})
	if open == done {
		t.Error("status filters must not share a cache key")
	}
}
