package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// ExpertiseProfile is the matching vocabulary the scoring engine consults for
// the expertise factor.
type ExpertiseProfile struct {
	Domains  []string
	Keywords []string
}

// Registry resolves candidate expertise. Implementations must be safe for
// concurrent reads.
type Registry interface {
	Lookup(agentID string) (ExpertiseProfile, bool)
	Agents() []core.Agent
}

// Static is an in-memory Registry built from deployment configuration.
type Static struct {
	mu       sync.RWMutex
	agents   map[string]core.Agent
	profiles map[string]ExpertiseProfile
}

// NewStatic builds a registry from a fixed agent catalog.
func NewStatic(agents []core.Agent) *Static {
	s := &Static{
		agents:   make(map[string]core.Agent, len(agents)),
		profiles: make(map[string]ExpertiseProfile, len(agents)),
	}
	for _, a := range agents {
		s.put(a)
	}
	return s
}

func (s *Static) put(a core.Agent) {
	key := normalizeKey(a.ID)
	if key == "" {
		return
	}
	s.agents[key] = a
	s.profiles[key] = ExpertiseProfile{
		Domains:  lowerAll(a.Domains),
		Keywords: lowerAll(a.Keywords),
	}
}

// Replace swaps the whole catalog, for config refresh without restart.
func (s *Static) Replace(agents []core.Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = make(map[string]core.Agent, len(agents))
	s.profiles = make(map[string]ExpertiseProfile, len(agents))
	for _, a := range agents {
		s.put(a)
	}
}

// Lookup returns the expertise profile for an agent, if registered.
func (s *Static) Lookup(agentID string) (ExpertiseProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[normalizeKey(agentID)]
	return p, ok
}

// Agents returns the catalog sorted by agent ID.
func (s *Static) Agents() []core.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TypeDomains maps a mission type to the domains an ideal specialist covers.
// Used by the third expertise signal.
func TypeDomains(t core.MissionType) []string {
	switch t {
	case core.MissionTypeContent:
		return []string{"content", "writing", "creative"}
	case core.MissionTypeAnalysis:
		return []string{"analysis", "data", "research"}
	case core.MissionTypeAutomation:
		return []string{"automation", "engineering", "technical"}
	case core.MissionTypeResearch:
		return []string{"research", "analysis", "data"}
	case core.MissionTypeCreative:
		return []string{"creative", "content", "design"}
	default:
		return nil
	}
}

func normalizeKey(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = normalizeKey(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
