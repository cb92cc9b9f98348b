package missions

import (
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// Mission is the persisted mission row.
type Mission struct {
	ID           string `gorm:"primaryKey;size:64"`
	AgentID      string `gorm:"index;size:64;not null"`
	Status       string `gorm:"index;size:16;not null"`
	Type         string `gorm:"size:16"`
	CreatedAt    time.Time
	CompletedAt  *time.Time
	Satisfaction *float64
	Deliverables []DeliverableRow `gorm:"foreignKey:MissionID;references:ID"`
}

// DeliverableRow is one persisted mission output.
type DeliverableRow struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	MissionID string `gorm:"index;size:64;not null"`
	Quality   *float64
	Content   string `gorm:"type:text"`
	Structure string `gorm:"size:16"`
}

// TableName pins the deliverables table name.
func (DeliverableRow) TableName() string { return "mission_deliverables" }

// Record converts the row into the core read model.
func (m Mission) Record() core.MissionRecord {
	rec := core.MissionRecord{
		ID:           m.ID,
		AgentID:      m.AgentID,
		Status:       core.MissionStatus(m.Status),
		Type:         core.MissionType(m.Type),
		CreatedAt:    m.CreatedAt,
		CompletedAt:  m.CompletedAt,
		Satisfaction: m.Satisfaction,
	}
	for _, d := range m.Deliverables {
		rec.Deliverables = append(rec.Deliverables, core.Deliverable{
			Quality:   d.Quality,
			Content:   d.Content,
			Structure: d.Structure,
		})
	}
	return rec
}
