package scoring

import (
	"strings"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
)

// neutral is the factor value used when a signal carries no information.
const neutral = 0.5

// expertiseScore averages three signals: declared-domain overlap, keyword
// vocabulary match, and coverage of the ideal domains for the mission type.
// Candidates the registry does not know get the neutral value outright.
func expertiseScore(profile registry.ExpertiseProfile, known bool, mctx core.MissionContext) float64 {
	if !known {
		return neutral
	}

	domainSignal := neutral
	if len(mctx.Domains) > 0 {
		domainSignal = 0
		for _, d := range mctx.Domains {
			if containsFold(profile.Domains, d) {
				domainSignal = 1
				break
			}
		}
	}

	keywordSignal := neutral
	if len(mctx.Keywords) > 0 {
		matched := 0
		for _, kw := range mctx.Keywords {
			if substringMatch(profile.Keywords, kw) {
				matched++
			}
		}
		keywordSignal = float64(matched) / float64(len(mctx.Keywords))
	}

	typeSignal := neutral
	if ideal := registry.TypeDomains(mctx.Type); len(ideal) > 0 {
		covered := 0
		for _, d := range ideal {
			if containsFold(profile.Domains, d) {
				covered++
			}
		}
		typeSignal = float64(covered) / float64(len(ideal))
	}

	return core.Clamp01((domainSignal + keywordSignal + typeSignal) / 3)
}

// contextFitScore is the fraction of requirement strings that match the
// candidate's strengths or domains. No requirements means no signal.
func contextFitScore(agent core.Agent, requirements []string) float64 {
	if len(requirements) == 0 {
		return neutral
	}
	vocabulary := make([]string, 0, len(agent.Strengths)+len(agent.Domains))
	for _, s := range agent.Strengths {
		vocabulary = append(vocabulary, strings.ToLower(s))
	}
	for _, d := range agent.Domains {
		vocabulary = append(vocabulary, strings.ToLower(d))
	}

	matched := 0
	for _, req := range requirements {
		if substringMatch(vocabulary, req) {
			matched++
		}
	}
	return core.Clamp01(float64(matched) / float64(len(requirements)))
}

// availabilityScore decays by 0.2 per open mission. Five or more open
// missions make a candidate unavailable.
func availabilityScore(load core.MissionLoad) float64 {
	score := 1 - float64(load.Active())*0.2
	if score < 0 {
		return 0
	}
	return score
}

// workloadScore models queue depth: a shallower decay on pending missions
// only, floored so a deep queue dampens but never disqualifies.
func workloadScore(load core.MissionLoad) float64 {
	score := 1 - float64(load.Pending)*0.15
	if score < 0.3 {
		return 0.3
	}
	return score
}

// matchedDomains lists the context domains the candidate declares, for the
// reasoning output.
func matchedDomains(agent core.Agent, mctx core.MissionContext) []string {
	lowered := make([]string, 0, len(agent.Domains))
	for _, d := range agent.Domains {
		lowered = append(lowered, strings.ToLower(d))
	}
	var out []string
	for _, d := range mctx.Domains {
		if containsFold(lowered, d) {
			out = append(out, strings.ToLower(d))
		}
	}
	return out
}

func containsFold(set []string, s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// substringMatch reports whether term substring-matches any vocabulary entry,
// in either direction, case-insensitively. Entries are expected lowercased.
func substringMatch(vocabulary []string, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, v := range vocabulary {
		if strings.Contains(v, term) || strings.Contains(term, v) {
			return true
		}
	}
	return false
}
