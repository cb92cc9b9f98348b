package scoring

import (
	"math"
	"testing"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/registry"
)

func TestAvailabilityScore(t *testing.T) {
	testCases := []struct {
		name string
		load core.MissionLoad
		want float64
	}{
		{name: "fully idle", load: core.MissionLoad{}, want: 1.0},
		{name: "one active", load: core.MissionLoad{InProgress: 1}, want: 0.8},
		{name: "mixed load", load: core.MissionLoad{Pending: 1, InProgress: 2}, want: 0.4},
		{name: "five active saturates", load: core.MissionLoad{Pending: 2, InProgress: 3}, want: 0.0},
		{name: "beyond saturation stays zero", load: core.MissionLoad{Pending: 10}, want: 0.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := availabilityScore(tc.load); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("availabilityScore(%+v) = %v, want %v", tc.load, got, tc.want)
			}
		})
	}
}

func TestWorkloadScore(t *testing.T) {
	testCases := []struct {
		name string
		load core.MissionLoad
		want float64
	}{
		{name: "empty queue", load: core.MissionLoad{}, want: 1.0},
		{name: "two pending", load: core.MissionLoad{Pending: 2}, want: 0.7},
		{name: "deep queue hits floor", load: core.MissionLoad{Pending: 10}, want: 0.3},
		{name: "in-progress does not count", load: core.MissionLoad{InProgress: 4}, want: 1.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := workloadScore(tc.load); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("workloadScore(%+v) = %v, want %v", tc.load, got, tc.want)
			}
		})
	}
}

func TestExpertiseScoreSpecialistBeatsGeneralist(t *testing.T) {
	reg := registry.NewStatic([]core.Agent{
		{
			ID:       "content-writer",
			Domains:  []string{"content", "writing", "creative"},
			Keywords: []string{"seo", "blog", "content"},
		},
		{
			ID:       "backend-dev",
			Domains:  []string{"technical"},
			Keywords: []string{"code", "api"},
		},
	})
	mctx := core.MissionContext{
		Type:     core.MissionTypeContent,
		Domains:  []string{"content"},
		Keywords: []string{"seo", "wordpress"},
	}

	writerProfile, ok := reg.Lookup("content-writer")
	if !ok {
		t.Fatal("content-writer missing from registry")
	}
	devProfile, ok := reg.Lookup("backend-dev")
	if !ok {
		t.Fatal("backend-dev missing from registry")
	}

	writer := expertiseScore(writerProfile, true, mctx)
	dev := expertiseScore(devProfile, true, mctx)

	// domain overlap 1.0, keywords 1/2, type coverage 3/3
	want := (1.0 + 0.5 + 1.0) / 3
	if math.Abs(writer-want) > 1e-9 {
		t.Errorf("writer expertise = %v, want %v", writer, want)
	}
	if dev >= writer {
		t.Errorf("specialist should outscore generalist: writer=%v dev=%v", writer, dev)
	}
}

func TestExpertiseScoreUnknownAgentIsNeutral(t *testing.T) {
	got := expertiseScore(registry.ExpertiseProfile{}, false, core.MissionContext{
		Type:    core.MissionTypeContent,
		Domains: []string{"content"},
	})
	if got != 0.5 {
		t.Errorf("unknown agent expertise = %v, want 0.5", got)
	}
}

func TestContextFitScore(t *testing.T) {
	agent := core.Agent{
		Domains:   []string{"content"},
		Strengths: []string{"seo optimization", "long-form writing"},
	}

	testCases := []struct {
		name         string
		requirements []string
		want         float64
	}{
		{name: "no requirements is neutral", requirements: nil, want: 0.5},
		{name: "all matched", requirements: []string{"seo", "content"}, want: 1.0},
		{name: "half matched", requirements: []string{"seo", "kubernetes"}, want: 0.5},
		{name: "none matched", requirements: []string{"kubernetes"}, want: 0.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := contextFitScore(agent, tc.requirements); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("contextFitScore(%v) = %v, want %v", tc.requirements, got, tc.want)
			}
		})
	}
}
