package registry

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// AgentRow is the catalog row as stored in MySQL. Set columns hold
// comma-separated values, matching how deployment tooling writes them.
type AgentRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128;not null"`
	Domains   string `gorm:"size:512"`
	Strengths string `gorm:"size:512"`
	Keywords  string `gorm:"size:512"`
	Active    bool   `gorm:"default:true"`
}

// TableName keeps the table named after the product vocabulary.
func (AgentRow) TableName() string { return "agents" }

// LoadDB reads all active catalog rows and returns a populated registry.
func LoadDB(db *gorm.DB) (*Static, error) {
	var rows []AgentRow
	if err := db.Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("registry: load agents: %w", err)
	}

	agents := make([]core.Agent, 0, len(rows))
	for _, r := range rows {
		agents = append(agents, core.Agent{
			ID:        r.ID,
			Name:      r.Name,
			Domains:   splitSet(r.Domains),
			Strengths: splitSet(r.Strengths),
			Keywords:  splitSet(r.Keywords),
		})
	}
	return NewStatic(agents), nil
}

func splitSet(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
