package core

import "time"

// MissionType categorizes the kind of work a mission requires.
type MissionType string

const (
	MissionTypeContent    MissionType = "content"
	MissionTypeAnalysis   MissionType = "analysis"
	MissionTypeAutomation MissionType = "automation"
	MissionTypeResearch   MissionType = "research"
	MissionTypeCreative   MissionType = "creative"
)

// Complexity buckets missions by expected effort.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Urgency expresses how soon the caller needs the mission handled.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// MissionStatus enumerates lifecycle states for missions in the store.
type MissionStatus string

const (
	MissionStatusPending    MissionStatus = "pending"
	MissionStatusInProgress MissionStatus = "in_progress"
	MissionStatusCompleted  MissionStatus = "completed"
	MissionStatusFailed     MissionStatus = "failed"
	MissionStatusCancelled  MissionStatus = "cancelled"
)

// Agent is a catalog entry for a specialized worker. Entries come from
// deployment configuration and are immutable at runtime.
type Agent struct {
	ID        string
	Name      string
	Domains   []string
	Strengths []string
	Keywords  []string
}

// MissionContext carries everything a caller knows about the mission being
// assigned. Built per scoring request, never persisted.
type MissionContext struct {
	Type         MissionType
	Complexity   Complexity
	Urgency      Urgency
	Domains      []string
	Keywords     []string
	Requirements []string
}

// Deliverable is one output artifact of a mission.
type Deliverable struct {
	Quality   *float64
	Content   string
	Structure string
}

// MissionRecord is the read-only view of a mission held by the external
// store. Satisfaction and CompletedAt are nil until the mission finishes.
type MissionRecord struct {
	ID           string
	AgentID      string
	Status       MissionStatus
	Type         MissionType
	CreatedAt    time.Time
	CompletedAt  *time.Time
	Satisfaction *float64
	Deliverables []Deliverable
}

// FactorScores holds the five weighted components of an agent score.
type FactorScores struct {
	Expertise    float64 `json:"expertise"`
	Performance  float64 `json:"performance"`
	Availability float64 `json:"availability"`
	Context      float64 `json:"context"`
	Workload     float64 `json:"workload"`
}

// AgentScore is one ranked candidate with its factor breakdown and
// human-readable reasoning. Reasoning is advisory only.
type AgentScore struct {
	AgentID   string       `json:"agentId"`
	Score     float64      `json:"score"`
	Factors   FactorScores `json:"factors"`
	Reasoning []string     `json:"reasoning"`
	Degraded  bool         `json:"degraded,omitempty"`
}

// MissionLoad counts a candidate's open missions by state.
type MissionLoad struct {
	Pending    int
	InProgress int
}

// Active returns the total open-mission count.
func (l MissionLoad) Active() int {
	return l.Pending + l.InProgress
}

// MissionMetrics summarizes a single mission.
type MissionMetrics struct {
	MissionID        string             `json:"missionId"`
	Duration         time.Duration      `json:"duration"`
	Quality          float64            `json:"quality"`
	Satisfaction     float64            `json:"satisfaction"`
	Cost             float64            `json:"cost"`
	ROI              float64            `json:"roi"`
	Efficiency       float64            `json:"efficiency"`
	AgentPerformance map[string]float64 `json:"agentPerformance"`
	StepMetrics      map[string]any     `json:"stepMetrics"`
}

// AgentMetrics aggregates a single agent's mission history.
type AgentMetrics struct {
	AgentID             string        `json:"agentId"`
	TotalMissions       int           `json:"totalMissions"`
	CompletedMissions   int           `json:"completedMissions"`
	AverageQuality      float64       `json:"averageQuality"`
	AverageDuration     time.Duration `json:"averageDuration"`
	AverageSatisfaction float64       `json:"averageSatisfaction"`
	SuccessRate         float64       `json:"successRate"`
	Specializations     []string      `json:"specializations"`
	PerformanceTrend    float64       `json:"performanceTrend"`
}

// SystemMetrics aggregates across the whole mission store.
type SystemMetrics struct {
	TotalMissions       int            `json:"totalMissions"`
	ActiveMissions      int            `json:"activeMissions"`
	AverageROI          float64        `json:"averageRoi"`
	AverageEfficiency   float64        `json:"averageEfficiency"`
	TopPerformingAgents []AgentMetrics `json:"topPerformingAgents"`
	SystemHealth        float64        `json:"systemHealth"`
	CostSavings         float64        `json:"costSavings"`
	ProductivityGain    float64        `json:"productivityGain"`
}

// Clamp01 bounds v to [0,1]. Every published score passes through it.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
