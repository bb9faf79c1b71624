package team

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, gateway *stubGateway) (*Router, *Store) {
	t.Helper()

	store := NewStore()
	executor, err := NewExecutor(ExecutorConfig{
		Store:   store,
		Gateway: gateway,
		IDs:     &sequentialIDs{},
		Model:   "gpt-4.1-mini",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	router, err := NewRouter(RouterConfig{
		Store:    store,
		Gateway:  gateway,
		Executor: executor,
		Model:    "gpt-4.1-mini",
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	return router, store
}

func TestRouterNoAgents(t *testing.T) {
	gateway := &stubGateway{}
	router, _ := newTestRouter(t, gateway)

	result, err := router.Route(context.Background(), RouteParams{Description: "anything"})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Nil(t, result)
	assert.Equal(t, 0, gateway.callCount(), "must fail before any gateway call")
}

func TestRouterMissingDescription(t *testing.T) {
	gateway := &stubGateway{}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer"})

	_, err := router.Route(context.Background(), RouteParams{})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, gateway.callCount())
}

func TestRouterInvalidJSON(t *testing.T) {
	gateway := &stubGateway{responses: []string{"sorry, I cannot pick"}}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer", Specialization: "blog posts"})

	result, err := router.Route(context.Background(), RouteParams{Description: "Write a tagline"})

	var routingErr *RoutingError
	require.True(t, errors.As(err, &routingErr))
	assert.Equal(t, "sorry, I cannot pick", routingErr.Raw, "raw model output must surface for diagnosis")
	assert.Nil(t, result)
	assert.Empty(t, store.ListTasks(""), "no task may be created for an unusable decision")
}

func TestRouterDecisionFailsSchema(t *testing.T) {
	// Parses as JSON but names no agent
	gateway := &stubGateway{responses: []string{"{}"}}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer", Specialization: "blog posts"})

	_, err := router.Route(context.Background(), RouteParams{Description: "Write a tagline"})

	var routingErr *RoutingError
	require.True(t, errors.As(err, &routingErr))
	assert.Empty(t, store.ListTasks(""))
}

func TestRouterUnknownAgent(t *testing.T) {
	gateway := &stubGateway{responses: []string{`{"agent_id": "ghost", "reason": "x", "subtask": "y"}`}}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer", Specialization: "blog posts"})

	result, err := router.Route(context.Background(), RouteParams{Description: "Write a tagline"})

	var routingErr *RoutingError
	require.True(t, errors.As(err, &routingErr))
	assert.Contains(t, routingErr.Msg, "ghost")
	assert.Nil(t, result)
	assert.Empty(t, store.ListTasks(""), "agent is validated before any task is created")
	assert.Equal(t, 1, gateway.callCount())
}

func TestRouterSuccess(t *testing.T) {
	gateway := &stubGateway{responses: []string{
		`{"agent_id": "a2", "reason": "specialist", "subtask": "Draft three tagline options"}`,
		"Fly Higher.",
	}}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Analyst", Role: "analyst", Specialization: "metrics"})
	store.PutAgent(Agent{ID: "a2", Name: "Writer", Role: "writer", Specialization: "blog posts", SystemPrompt: "You write."})

	result, err := router.Route(context.Background(), RouteParams{
		Description: "Write a tagline",
		Context:     map[string]interface{}{"brand": "AeroCo"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Task routed to Writer", result.Summary)
	assert.Equal(t, "a2", result.Routing.AgentID)
	assert.Equal(t, "specialist", result.Routing.Reason)

	require.NotNil(t, result.Task)
	assert.Equal(t, TaskCompleted, result.Task.Status)
	assert.Equal(t, "a2", result.Task.AgentID)
	assert.Equal(t, "Draft three tagline options", result.Task.Description, "subtask replaces original description")
	assert.Equal(t, []string{"Fly Higher."}, result.Task.Outputs)

	// First call routes, second executes
	require.Equal(t, 2, gateway.callCount())
	routeRequest := gateway.requests[0]
	assert.InDelta(t, 0.3, routeRequest.Temperature, 1e-9)
	assert.Contains(t, routeRequest.Messages[0].Content, "routing engine")
	assert.Contains(t, routeRequest.Messages[1].Content, `"id": "a2"`)
	assert.NotContains(t, routeRequest.Messages[1].Content, "You write.", "system prompts stay out of the roster")

	executeRequest := gateway.requests[1]
	assert.InDelta(t, 0.7, executeRequest.Temperature, 1e-9)
	assert.Equal(t, "You write.", executeRequest.Messages[0].Content)
}

func TestRouterFallsBackToOriginalDescription(t *testing.T) {
	gateway := &stubGateway{responses: []string{
		`{"agent_id": "a1", "reason": "only choice"}`,
		"done",
	}}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer", Specialization: "blog posts"})

	result, err := router.Route(context.Background(), RouteParams{Description: "Write a tagline"})
	require.NoError(t, err)

	assert.Equal(t, "Write a tagline", result.Task.Description)
}

func TestRouterRoutedTaskFails(t *testing.T) {
	// Routing succeeds, execution fails
	gateway := &stubGateway{
		responses: []string{`{"agent_id": "a1", "reason": "r", "subtask": "s"}`},
		errAfter:  1,
		err:       fmt.Errorf("quota exhausted"),
	}
	router, store := newTestRouter(t, gateway)
	store.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer", Specialization: "blog posts"})

	result, err := router.Route(context.Background(), RouteParams{Description: "Write a tagline"})

	var gatewayErr *GatewayError
	require.True(t, errors.As(err, &gatewayErr))

	// The failed task still rides along in the result
	require.NotNil(t, result)
	require.NotNil(t, result.Task)
	assert.Equal(t, TaskFailed, result.Task.Status)
	assert.Equal(t, "quota exhausted", result.Task.Error)
	assert.NotNil(t, result.Task.CompletedAt)
}
