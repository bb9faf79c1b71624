package team

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/campaignhq/maestro/internal/metrics"
	"github.com/campaignhq/maestro/pkg/completion"
)

// routeTemperature is the sampling temperature for routing decisions
const routeTemperature = 0.3

const routerSystemPrompt = `You are a routing engine. Based on the list of agents and the task description,
choose the 1 best agent and return JSON:
{
  "agent_id": "...",
  "reason": "why this agent",
  "subtask": "what this agent should do"
}`

// decisionSchema constrains the routing decision beyond bare JSON
// parsing: the decision must be an object naming an agent.
const decisionSchema = `{
  "type": "object",
  "required": ["agent_id"],
  "properties": {
    "agent_id": {"type": "string", "minLength": 1},
    "reason": {"type": "string"},
    "subtask": {"type": "string"}
  }
}`

// RouterConfig holds router dependencies
type RouterConfig struct {
	Store    *Store
	Gateway  completion.Gateway
	Executor *Executor
	Model    string
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
}

// Router selects an agent for an undirected task description by asking
// the completion gateway itself, then delegates execution to the
// executor. There are no retries and no fallback agent: an unusable
// decision fails the request.
type Router struct {
	store    *Store
	gateway  completion.Gateway
	executor *Executor
	model    string
	schema   gojsonschema.JSONLoader
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewRouter creates a new task router
func NewRouter(cfg RouterConfig) (*Router, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics()
	}

	return &Router{
		store:    cfg.Store,
		gateway:  cfg.Gateway,
		executor: cfg.Executor,
		model:    cfg.Model,
		schema:   gojsonschema.NewStringLoader(decisionSchema),
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// RouteParams contains input parameters for routing. Context is the
// merged session and request context.
type RouteParams struct {
	Description string
	Context     map[string]interface{}
	SessionID   string
}

// rosterEntry is the agent payload shown to the routing model. System
// prompts stay out of the roster.
type rosterEntry struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
}

// Route selects an agent for the description and executes the resulting
// task synchronously. The routed task is created only after the
// selected agent has been validated, so an invalid decision leaves no
// task behind.
//
// When the routed task itself fails at the gateway, the returned
// RouteResult still carries the failed task alongside the error.
func (r *Router) Route(ctx context.Context, params RouteParams) (*RouteResult, error) {
	if params.Description == "" {
		return nil, &ValidationError{Msg: "description is required"}
	}

	agents := r.store.ListAgents()
	if len(agents) == 0 {
		return nil, &ValidationError{Msg: "no agents available to route tasks"}
	}

	roster := make([]rosterEntry, 0, len(agents))
	for _, a := range agents {
		roster = append(roster, rosterEntry{
			ID:             a.ID,
			Name:           a.Name,
			Role:           a.Role,
			Specialization: a.Specialization,
		})
	}
	payload, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent roster: %w", err)
	}

	response, err := r.gateway.Complete(ctx, completion.Request{
		Model:       r.model,
		Temperature: routeTemperature,
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: routerSystemPrompt},
			{Role: completion.RoleUser, Content: fmt.Sprintf("Task:\n%s\n\nAgents:\n%s", params.Description, payload)},
		},
	})
	if err != nil {
		r.metrics.GatewayCallsTotal.WithLabelValues(r.gateway.Provider(), "error").Inc()
		r.metrics.RoutingDecisionsTotal.WithLabelValues("gateway_error").Inc()
		return nil, &GatewayError{Err: err}
	}
	r.metrics.GatewayCallsTotal.WithLabelValues(r.gateway.Provider(), "success").Inc()

	decision, err := r.parseDecision(response.Content)
	if err != nil {
		r.metrics.RoutingDecisionsTotal.WithLabelValues("invalid_decision").Inc()
		r.logger.Warn().
			Str("raw", response.Content).
			Msg("Router produced invalid output")
		return nil, err
	}

	agent, ok := r.store.GetAgent(decision.AgentID)
	if !ok {
		r.metrics.RoutingDecisionsTotal.WithLabelValues("unknown_agent").Inc()
		return nil, &RoutingError{
			Msg: fmt.Sprintf("router selected unknown agent: %s", decision.AgentID),
			Raw: response.Content,
		}
	}
	r.metrics.RoutingDecisionsTotal.WithLabelValues("selected").Inc()

	r.logger.Info().
		Str("agent_id", agent.ID).
		Str("reason", decision.Reason).
		Msg("Routing decision")

	description := decision.Subtask
	if description == "" {
		description = params.Description
	}

	// Routed tasks always execute synchronously
	task, err := r.executor.Execute(ctx, ExecuteParams{
		Agent:       agent,
		Description: description,
		Context:     params.Context,
		SessionID:   params.SessionID,
		Sync:        true,
	})

	result := &RouteResult{
		Summary: fmt.Sprintf("Task routed to %s", agent.Name),
		Routing: *decision,
		Task:    task,
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

// parseDecision strictly parses the routing model output
func (r *Router) parseDecision(raw string) (*RoutingDecision, error) {
	var decision RoutingDecision
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		return nil, &RoutingError{Msg: "router produced invalid JSON", Raw: raw}
	}

	result, err := gojsonschema.Validate(r.schema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &RoutingError{Msg: fmt.Sprintf("routing decision validation error: %v", err), Raw: raw}
	}
	if !result.Valid() {
		return nil, &RoutingError{Msg: "routing decision failed schema validation", Raw: raw}
	}

	return &decision, nil
}
