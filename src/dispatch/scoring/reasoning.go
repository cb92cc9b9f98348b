package scoring

import (
	"fmt"
	"strings"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// buildReasoning turns factor values into advisory explanation strings. The
// output never feeds back into the numeric score.
func buildReasoning(factors core.FactorScores, domains []string, degraded bool) []string {
	var out []string

	switch {
	case factors.Expertise > 0.8:
		out = append(out, fmt.Sprintf("excellent expertise match (%.0f%%)", factors.Expertise*100))
	case factors.Expertise > 0.6:
		out = append(out, "good expertise match")
	}
	if factors.Performance > 0.8 {
		out = append(out, "exceptional recent performance")
	}
	if factors.Availability > 0.9 {
		out = append(out, "high availability")
	}
	if factors.Context > 0.8 {
		out = append(out, "well suited to requirements")
	}
	if len(domains) > 0 {
		out = append(out, "matched domains: "+strings.Join(domains, ", "))
	}
	if degraded {
		out = append(out, "scored with defaults: history unavailable")
	}
	return out
}
