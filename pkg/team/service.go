package team

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campaignhq/maestro/internal/metrics"
	"github.com/campaignhq/maestro/pkg/completion"
)

// ServiceConfig holds service dependencies. Gateway is required; the
// store, id generator, model, and metrics fall back to defaults.
type ServiceConfig struct {
	Store   *Store
	Gateway completion.Gateway
	IDs     IDGenerator
	Model   string
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// DefaultModel is the completion model used when none is configured
const DefaultModel = "gpt-4.1-mini"

// Service is the orchestration facade. It owns the entity store and
// exposes every operation of the request surface; transports call only
// the Service.
type Service struct {
	store    *Store
	ids      IDGenerator
	executor *Executor
	router   *Router
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a new orchestration service
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if cfg.Store == nil {
		cfg.Store = NewStore()
	}
	if cfg.IDs == nil {
		cfg.IDs = NewNanoIDGenerator()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics()
	}

	executor, err := NewExecutor(ExecutorConfig{
		Store:   cfg.Store,
		Gateway: cfg.Gateway,
		IDs:     cfg.IDs,
		Model:   cfg.Model,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	router, err := NewRouter(RouterConfig{
		Store:    cfg.Store,
		Gateway:  cfg.Gateway,
		Executor: executor,
		Model:    cfg.Model,
		Logger:   cfg.Logger,
		Metrics:  cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &Service{
		store:    cfg.Store,
		ids:      cfg.IDs,
		executor: executor,
		router:   router,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// CreateSessionParams contains input for session creation
type CreateSessionParams struct {
	Name    string
	Brand   string
	Context map[string]interface{}
	OwnerID string
}

// CreateSession creates and stores a new session
func (s *Service) CreateSession(params CreateSessionParams) (*Session, error) {
	if params.Name == "" {
		return nil, &ValidationError{Msg: "name is required"}
	}

	context := params.Context
	if context == nil {
		context = map[string]interface{}{}
	}

	session := Session{
		ID:        s.ids.NewID("session"),
		Name:      params.Name,
		Brand:     params.Brand,
		Context:   context,
		OwnerID:   params.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	s.store.PutSession(session)
	s.metrics.SessionsCreatedTotal.Inc()

	s.logger.Info().
		Str("session_id", session.ID).
		Str("name", session.Name).
		Msg("Session created")

	return &session, nil
}

// GetSession retrieves a session by id
func (s *Service) GetSession(id string) (*Session, error) {
	session, ok := s.store.GetSession(id)
	if !ok {
		return nil, &NotFoundError{Kind: "session", ID: id}
	}
	return &session, nil
}

// MergeSessionContext merges new context into an existing session. New
// keys overwrite old ones; unrelated keys are preserved.
func (s *Service) MergeSessionContext(id string, context map[string]interface{}) (*Session, error) {
	session, ok := s.store.GetSession(id)
	if !ok {
		return nil, &NotFoundError{Kind: "session", ID: id}
	}

	session.Context = MergeContext(session.Context, context)
	s.store.PutSession(session)

	s.logger.Debug().
		Str("session_id", session.ID).
		Int("keys", len(session.Context)).
		Msg("Session context merged")

	return &session, nil
}

// RegisterAgentParams contains input for agent registration
type RegisterAgentParams struct {
	ID             string
	Name           string
	Role           string
	Specialization string
	SystemPrompt   string
	Metadata       map[string]interface{}
}

// RegisterAgent creates or replaces an agent. Re-registration under the
// same id overwrites every field; there is no merge.
func (s *Service) RegisterAgent(params RegisterAgentParams) (*Agent, error) {
	if params.Name == "" || params.Role == "" || params.Specialization == "" {
		return nil, &ValidationError{Msg: "name, role, and specialization are required"}
	}

	id := params.ID
	if id == "" {
		id = s.ids.NewID("agent")
	}

	metadata := params.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	agent := Agent{
		ID:             id,
		Name:           params.Name,
		Role:           params.Role,
		Specialization: params.Specialization,
		SystemPrompt:   params.SystemPrompt,
		Metadata:       metadata,
	}
	s.store.PutAgent(agent)
	s.metrics.AgentsRegisteredTotal.Inc()

	s.logger.Info().
		Str("agent_id", agent.ID).
		Str("role", agent.Role).
		Msg("Agent registered")

	return &agent, nil
}

// GetAgent retrieves an agent by id
func (s *Service) GetAgent(id string) (*Agent, error) {
	agent, ok := s.store.GetAgent(id)
	if !ok {
		return nil, &NotFoundError{Kind: "agent", ID: id}
	}
	return &agent, nil
}

// ListAgents returns the full agent roster in registration order
func (s *Service) ListAgents() []Agent {
	return s.store.ListAgents()
}

// ListTasks returns tasks, optionally filtered by status
func (s *Service) ListTasks(status TaskStatus) []Task {
	return s.store.ListTasks(status)
}

// GetTask retrieves a task by id
func (s *Service) GetTask(id string) (*Task, error) {
	task, ok := s.store.GetTask(id)
	if !ok {
		return nil, &NotFoundError{Kind: "task", ID: id}
	}
	return &task, nil
}

// ExecuteTaskParams contains input for direct task execution
type ExecuteTaskParams struct {
	AgentID     string
	Description string
	Priority    string
	Context     map[string]interface{}
	SessionID   string
	Sync        bool
}

// ExecuteTask resolves the target agent, merges context, and hands off
// to the executor. The agent is validated before any task id is
// consumed. With no AgentID the first registered agent is used.
func (s *Service) ExecuteTask(ctx context.Context, params ExecuteTaskParams) (*Task, error) {
	if params.Description == "" {
		return nil, &ValidationError{Msg: "description is required"}
	}

	var agent Agent
	if params.AgentID == "" {
		first, ok := s.store.FirstAgent()
		if !ok {
			return nil, &ValidationError{Msg: "no agents available, create agents first"}
		}
		agent = first
	} else {
		found, ok := s.store.GetAgent(params.AgentID)
		if !ok {
			return nil, &NotFoundError{Kind: "agent", ID: params.AgentID}
		}
		agent = found
	}

	return s.executor.Execute(ctx, ExecuteParams{
		Agent:       agent,
		Description: params.Description,
		Context:     s.mergedContext(params.SessionID, params.Context),
		Priority:    params.Priority,
		SessionID:   params.SessionID,
		Sync:        params.Sync,
	})
}

// RouteTaskParams contains input for routed task execution
type RouteTaskParams struct {
	Description string
	Context     map[string]interface{}
	SessionID   string
}

// RouteTask asks the gateway to select an agent for the description and
// executes the resulting task synchronously
func (s *Service) RouteTask(ctx context.Context, params RouteTaskParams) (*RouteResult, error) {
	return s.router.Route(ctx, RouteParams{
		Description: params.Description,
		Context:     s.mergedContext(params.SessionID, params.Context),
		SessionID:   params.SessionID,
	})
}

// mergedContext resolves optional session context and merges it with
// the request context. A session id that does not resolve contributes
// nothing; it is not an error.
func (s *Service) mergedContext(sessionID string, request map[string]interface{}) map[string]interface{} {
	var sessionContext map[string]interface{}
	if sessionID != "" {
		if session, ok := s.store.GetSession(sessionID); ok {
			sessionContext = session.Context
		}
	}
	return MergeContext(sessionContext, request)
}
