package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/metrics"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
	"github.com/crewdesk/crewdesk/src/dispatch/scoring"
	"github.com/crewdesk/crewdesk/src/shared/data"
)

type Scores struct {
	engine    *scoring.Engine
	calc      *metrics.Calculator
	registry  registry.Registry
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
}

func NewScores(engine *scoring.Engine, calc *metrics.Calculator, reg registry.Registry, rdb *redis.Client) Scores {
	return Scores{
		engine:    engine,
		calc:      calc,
		registry:  reg,
		rdb:       rdb,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Compute ranks candidates for a mission context supplied by the
// orchestrator. Free-text fields arrive from end users upstream, so they are
// sanitized before they reach the matching logic.
func (s Scores) Compute(c *gin.Context) {
	var req struct {
		Type         string   `json:"type"       binding:"required,oneof=content analysis automation research creative"`
		Complexity   string   `json:"complexity" binding:"required,oneof=low medium high"`
		Urgency      string   `json:"urgency"    binding:"omitempty,oneof=low medium high"`
		Domains      []string `json:"domains"      binding:"max=16,dive,max=64"`
		Keywords     []string `json:"keywords"     binding:"max=32,dive,max=64"`
		Requirements []string `json:"requirements" binding:"max=32,dive,max=256"`
		CandidateIDs []string `json:"candidateIds" binding:"max=64,dive,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	mctx := core.MissionContext{
		Type:         core.MissionType(req.Type),
		Complexity:   core.Complexity(req.Complexity),
		Urgency:      core.Urgency(req.Urgency),
		Domains:      s.sanitizeAll(req.Domains),
		Keywords:     s.sanitizeAll(req.Keywords),
		Requirements: s.sanitizeAll(req.Requirements),
	}

	candidates := s.resolveCandidates(req.CandidateIDs)
	scores, err := s.engine.ComputeAgentScores(c.Request.Context(), mctx, candidates, s.calc)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "scoring unavailable"})
		return
	}

	if len(scores) > 0 {
		if err := data.PublishScoreEvent(c.Request.Context(), s.rdb, map[string]interface{}{
			"type":   req.Type,
			"winner": scores[0].AgentID,
			"score":  scores[0].Score,
		}); err != nil {
			log.Printf("scores: publish event: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

func (s Scores) resolveCandidates(ids []string) []core.Agent {
	catalog := s.registry.Agents()
	if len(ids) == 0 {
		return catalog
	}
	byID := make(map[string]core.Agent, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}
	out := make([]core.Agent, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (s Scores) sanitizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = s.sanitizer.Sanitize(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
