package missions

import (
	"context"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// Filter narrows a mission listing. Zero values mean "any".
type Filter struct {
	AgentID  string
	Statuses []core.MissionStatus
	Since    time.Time
}

// Matches reports whether a record passes the filter.
func (f Filter) Matches(rec core.MissionRecord) bool {
	if f.AgentID != "" && rec.AgentID != f.AgentID {
		return false
	}
	if !f.Since.IsZero() && rec.CreatedAt.Before(f.Since) {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if rec.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Store is the read-only view of the external mission store. GetMission
// returns core.ErrNotFound for unknown IDs; transport failures wrap
// core.ErrStoreUnavailable.
type Store interface {
	GetMission(ctx context.Context, id string) (core.MissionRecord, error)
	ListMissions(ctx context.Context, f Filter) ([]core.MissionRecord, error)
}
