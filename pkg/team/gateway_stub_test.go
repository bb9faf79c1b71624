package team

import (
	"context"
	"fmt"
	"sync"

	"github.com/campaignhq/maestro/pkg/completion"
)

// stubGateway is a scripted completion gateway for tests. Responses are
// consumed in order; the last one repeats. A non-nil err fails calls
// once more than errAfter have been made, so errAfter 0 fails every
// call and errAfter 1 fails from the second call on.
type stubGateway struct {
	mu        sync.Mutex
	calls     int
	requests  []completion.Request
	responses []string
	err       error
	errAfter  int
}

func (g *stubGateway) Complete(ctx context.Context, request completion.Request) (*completion.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	g.requests = append(g.requests, request)

	if g.err != nil && g.calls > g.errAfter {
		return nil, g.err
	}

	content := ""
	if len(g.responses) > 0 {
		content = g.responses[0]
		if len(g.responses) > 1 {
			g.responses = g.responses[1:]
		}
	}
	return &completion.Response{Content: content}, nil
}

func (g *stubGateway) Provider() string {
	return "stub"
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// sequentialIDs is a deterministic IDGenerator for tests
type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequentialIDs) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s_%d", prefix, g.next)
}
