package team

import "time"

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether the status is final
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Valid reports whether the status is a known lifecycle state
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskFailed:
		return true
	}
	return false
}

// Agent is a named persona used to condition the completion gateway
type Agent struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Role           string                 `json:"role"`
	Specialization string                 `json:"specialization"`
	SystemPrompt   string                 `json:"system_prompt"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Session is a process-lifetime context bag, mergeable across requests
type Session struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Brand     string                 `json:"brand"`
	Context   map[string]interface{} `json:"context"`
	OwnerID   string                 `json:"owner_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Task is a unit of delegated work bound to one agent
type Task struct {
	ID          string     `json:"id"`
	AgentID     string     `json:"agent_id"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Outputs     []string   `json:"outputs"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Error       string     `json:"error,omitempty"`
	Priority    string     `json:"priority"`
	SessionID   string     `json:"session_id,omitempty"`
}

// RoutingDecision is the JSON object the routing model must return
type RoutingDecision struct {
	AgentID string `json:"agent_id"`
	Reason  string `json:"reason"`
	Subtask string `json:"subtask"`
}

// RouteResult bundles the outcome of a routed task
type RouteResult struct {
	Summary string          `json:"summary"`
	Routing RoutingDecision `json:"routing"`
	Task    *Task           `json:"task"`
}
