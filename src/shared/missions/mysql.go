package missions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// MySQL reads missions through GORM.
type MySQL struct {
	db *gorm.DB
}

// NewMySQL wraps an open GORM handle.
func NewMySQL(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// AutoMigrate creates the mission tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Mission{}, &DeliverableRow{})
}

func (s *MySQL) GetMission(ctx context.Context, id string) (core.MissionRecord, error) {
	var m Mission
	err := s.db.WithContext(ctx).Preload("Deliverables").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.MissionRecord{}, fmt.Errorf("%w: mission %s", core.ErrNotFound, id)
		}
		return core.MissionRecord{}, fmt.Errorf("%w: get mission %s: %v", core.ErrStoreUnavailable, id, err)
	}
	return m.Record(), nil
}

func (s *MySQL) ListMissions(ctx context.Context, f Filter) ([]core.MissionRecord, error) {
	q := s.db.WithContext(ctx).Preload("Deliverables")
	if f.AgentID != "" {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		q = q.Where("status IN ?", statuses)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}

	var rows []Mission
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list missions: %v", core.ErrStoreUnavailable, err)
	}

	out := make([]core.MissionRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.Record())
	}
	return out, nil
}
