package team

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campaignhq/maestro/internal/metrics"
	"github.com/campaignhq/maestro/pkg/completion"
)

const (
	// executeTemperature is the sampling temperature for task execution
	executeTemperature = 0.7

	// fallbackOutput replaces an empty gateway response on a completed task
	fallbackOutput = "No response generated."

	// defaultPriority applies when a request does not set one
	defaultPriority = "normal"
)

// ExecutorConfig holds executor dependencies
type ExecutorConfig struct {
	Store   *Store
	Gateway completion.Gateway
	IDs     IDGenerator
	Model   string
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Executor drives a single task through its lifecycle against the
// completion gateway. Task status only ever moves along
// pending -> in_progress -> {completed | failed}; terminal states are
// final.
type Executor struct {
	store   *Store
	gateway completion.Gateway
	ids     IDGenerator
	model   string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewExecutor creates a new task executor
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if cfg.IDs == nil {
		return nil, fmt.Errorf("id generator is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics()
	}

	return &Executor{
		store:   cfg.Store,
		gateway: cfg.Gateway,
		ids:     cfg.IDs,
		model:   cfg.Model,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}

// ExecuteParams contains input parameters for task execution. Agent
// must already be resolved; Context is the merged session and request
// context.
type ExecuteParams struct {
	Agent       Agent
	Description string
	Context     map[string]interface{}
	Priority    string
	SessionID   string
	Sync        bool
}

// Execute creates a task and, when Sync is set, runs it to a terminal
// state. With Sync unset the pending task is stored and returned
// without contacting the gateway; nothing advances it later.
//
// On gateway failure the failed task is returned alongside the error so
// callers can inspect partial state.
func (e *Executor) Execute(ctx context.Context, params ExecuteParams) (*Task, error) {
	if params.Description == "" {
		return nil, &ValidationError{Msg: "description is required"}
	}
	if params.Agent.ID == "" {
		return nil, &ValidationError{Msg: "agent is required"}
	}

	priority := params.Priority
	if priority == "" {
		priority = defaultPriority
	}

	task := Task{
		ID:          e.ids.NewID("task"),
		AgentID:     params.Agent.ID,
		Description: params.Description,
		Status:      TaskPending,
		Outputs:     []string{},
		StartedAt:   time.Now().UTC(),
		Priority:    priority,
		SessionID:   params.SessionID,
	}
	e.store.PutTask(task)

	if !params.Sync {
		e.logger.Info().
			Str("task_id", task.ID).
			Str("agent_id", task.AgentID).
			Msg("Task accepted without execution")
		return &task, nil
	}

	return e.run(ctx, task, params.Agent, params.Context)
}

// run advances a stored pending task to a terminal state
func (e *Executor) run(ctx context.Context, task Task, agent Agent, merged map[string]interface{}) (*Task, error) {
	task.Status = TaskInProgress
	e.store.PutTask(task)

	e.logger.Debug().
		Str("task_id", task.ID).
		Str("agent_id", agent.ID).
		Msg("Executing task")

	start := time.Now()
	response, err := e.gateway.Complete(ctx, completion.Request{
		Model:       e.model,
		Temperature: executeTemperature,
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: agent.SystemPrompt},
			{Role: completion.RoleUser, Content: buildTaskPrompt(task.Description, merged)},
		},
	})
	duration := time.Since(start)

	e.metrics.GatewayCallDuration.WithLabelValues(e.gateway.Provider()).Observe(duration.Seconds())
	e.metrics.TaskExecutionDuration.WithLabelValues(agent.ID).Observe(duration.Seconds())

	completedAt := time.Now().UTC()
	task.CompletedAt = &completedAt

	if err != nil {
		task.Status = TaskFailed
		task.Error = err.Error()
		e.store.PutTask(task)

		e.metrics.GatewayCallsTotal.WithLabelValues(e.gateway.Provider(), "error").Inc()
		e.metrics.TaskExecutionsTotal.WithLabelValues(agent.ID, string(TaskFailed)).Inc()

		e.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("agent_id", agent.ID).
			Msg("Task execution failed")

		return &task, &GatewayError{Err: err}
	}

	output := response.Content
	if output == "" {
		output = fallbackOutput
	}

	task.Status = TaskCompleted
	task.Outputs = []string{output}
	e.store.PutTask(task)

	e.metrics.GatewayCallsTotal.WithLabelValues(e.gateway.Provider(), "success").Inc()
	e.metrics.TaskExecutionsTotal.WithLabelValues(agent.ID, string(TaskCompleted)).Inc()

	e.logger.Info().
		Str("task_id", task.ID).
		Str("agent_id", agent.ID).
		Dur("duration", duration).
		Msg("Task completed")

	return &task, nil
}

// buildTaskPrompt renders the user message from the description and the
// merged context
func buildTaskPrompt(description string, context map[string]interface{}) string {
	rendered, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		rendered = []byte("{}")
	}
	return fmt.Sprintf("Task:\n%s\n\nContext:\n%s", description, rendered)
}
