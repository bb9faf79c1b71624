package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, gateway *stubGateway) (*Executor, *Store) {
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

	return executor, store
}

func TestExecutorSync(t *testing.T) {
	gateway := &stubGateway{responses: []string{"Fly Higher."}}
	executor, store := newTestExecutor(t, gateway)

	agent := Agent{ID: "a1", Name: "Writer", SystemPrompt: "You write taglines."}
	task, err := executor.Execute(context.Background(), ExecuteParams{
		Agent:       agent,
		Description: "Write a tagline",
		Context:     map[string]interface{}{"brand": "AeroCo"},
		Sync:        true,
	})
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.Equal(t, TaskCompleted, task.Status)
	assert.Equal(t, []string{"Fly Higher."}, task.Outputs)
	assert.NotNil(t, task.CompletedAt)
	assert.Empty(t, task.Error)
	assert.Equal(t, "normal", task.Priority)
	assert.Equal(t, 1, gateway.callCount())

	// The terminal state is persisted
	stored, ok := store.GetTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, TaskCompleted, stored.Status)

	// System prompt and rendered context reach the gateway
	require.Len(t, gateway.requests, 1)
	request := gateway.requests[0]
	assert.Equal(t, "gpt-4.1-mini", request.Model)
	assert.InDelta(t, 0.7, request.Temperature, 1e-9)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, "You write taglines.", request.Messages[0].Content)
	assert.Contains(t, request.Messages[1].Content, "Task:\nWrite a tagline")
	assert.Contains(t, request.Messages[1].Content, `"brand": "AeroCo"`)
}

func TestExecutorEmptyResponseFallback(t *testing.T) {
	gateway := &stubGateway{responses: []string{""}}
	executor, _ := newTestExecutor(t, gateway)

	task, err := executor.Execute(context.Background(), ExecuteParams{
		Agent:       Agent{ID: "a1"},
		Description: "Write a tagline",
		Sync:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, TaskCompleted, task.Status)
	assert.Equal(t, []string{"No response generated."}, task.Outputs)
}

func TestExecutorGatewayFailure(t *testing.T) {
	gateway := &stubGateway{err: fmt.Errorf("rate limit exceeded")}
	executor, store := newTestExecutor(t, gateway)

	task, err := executor.Execute(context.Background(), ExecuteParams{
		Agent:       Agent{ID: "a1"},
		Description: "Write a tagline",
		Sync:        true,
	})

	// The failed task travels with the error
	require.Error(t, err)
	require.NotNil(t, task)

	var gatewayErr *GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Contains(t, gatewayErr.Error(), "rate limit exceeded")

	assert.Equal(t, TaskFailed, task.Status)
	assert.Equal(t, "rate limit exceeded", task.Error)
	assert.NotNil(t, task.CompletedAt)
	assert.Empty(t, task.Outputs)

	stored, ok := store.GetTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, TaskFailed, stored.Status)
}

func TestExecutorFireAndForget(t *testing.T) {
	gateway := &stubGateway{responses: []string{"never used"}}
	executor, store := newTestExecutor(t, gateway)

	task, err := executor.Execute(context.Background(), ExecuteParams{
		Agent:       Agent{ID: "a1"},
		Description: "Write a tagline",
		Sync:        false,
	})
	require.NoError(t, err)

	assert.Equal(t, TaskPending, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Empty(t, task.Outputs)
	assert.Equal(t, 0, gateway.callCount(), "fire-and-forget must never contact the gateway")

	stored, ok := store.GetTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, TaskPending, stored.Status)
}

func TestExecutorValidation(t *testing.T) {
	gateway := &stubGateway{}
	executor, store := newTestExecutor(t, gateway)

	t.Run("missing description", func(t *testing.T) {
		task, err := executor.Execute(context.Background(), ExecuteParams{
			Agent: Agent{ID: "a1"},
			Sync:  true,
		})

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Nil(t, task)
	})

	t.Run("missing agent", func(t *testing.T) {
		task, err := executor.Execute(context.Background(), ExecuteParams{
			Description: "Write a tagline",
			Sync:        true,
		})

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Nil(t, task)
	})

	// Rejected requests consume no task ids and create no tasks
	assert.Empty(t, store.ListTasks(""))
	assert.Equal(t, 0, gateway.callCount())
}

func TestExecutorPriorityPassthrough(t *testing.T) {
	gateway := &stubGateway{responses: []string{"ok"}}
	executor, _ := newTestExecutor(t, gateway)

	task, err := executor.Execute(context.Background(), ExecuteParams{
		Agent:       Agent{ID: "a1"},
		Description: "Write a tagline",
		Priority:    "urgent",
		Sync:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "urgent", task.Priority)
}

func TestBuildTaskPrompt(t *testing.T) {
	prompt := buildTaskPrompt("Write a tagline", map[string]interface{}{"tone": "bold"})

	require.True(t, strings.HasPrefix(prompt, "Task:\nWrite a tagline\n\nContext:\n"))
	assert.Contains(t, prompt, `"tone": "bold"`)
}
