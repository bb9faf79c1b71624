package team

import "sync"

// Store holds agents, sessions, and tasks for the lifetime of the
// process. All access goes through the mutex; concurrent writers to the
// same id race with last-write-wins semantics. Agents and tasks keep
// their insertion order so roster listings are stable and "first
// registered agent" is well defined.
type Store struct {
	mu         sync.RWMutex
	agents     map[string]Agent
	agentOrder []string
	sessions   map[string]Session
	tasks      map[string]Task
	taskOrder  []string
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		agents:   make(map[string]Agent),
		sessions: make(map[string]Session),
		tasks:    make(map[string]Task),
	}
}

// PutAgent inserts or overwrites an agent by id. Re-registration under
// an existing id replaces all fields without growing the roster.
func (s *Store) PutAgent(a Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[a.ID]; !exists {
		s.agentOrder = append(s.agentOrder, a.ID)
	}
	s.agents[a.ID] = a
}

// GetAgent retrieves an agent by id
func (s *Store) GetAgent(id string) (Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	return a, ok
}

// ListAgents returns all agents in registration order
func (s *Store) ListAgents() []Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := make([]Agent, 0, len(s.agentOrder))
	for _, id := range s.agentOrder {
		agents = append(agents, s.agents[id])
	}
	return agents
}

// FirstAgent returns the earliest registered agent, if any
func (s *Store) FirstAgent() (Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.agentOrder) == 0 {
		return Agent{}, false
	}
	return s.agents[s.agentOrder[0]], true
}

// AgentCount returns the number of registered agents
func (s *Store) AgentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.agents)
}

// PutSession inserts or overwrites a session by id
func (s *Store) PutSession(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
}

// GetSession retrieves a session by id
func (s *Store) GetSession(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// PutTask inserts or overwrites a task by id
func (s *Store) PutTask(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID]; !exists {
		s.taskOrder = append(s.taskOrder, t.ID)
	}
	s.tasks[t.ID] = t
}

// GetTask retrieves a task by id
func (s *Store) GetTask(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	return t, ok
}

// ListTasks returns tasks in creation order, optionally filtered by
// status. An empty status returns every task.
func (s *Store) ListTasks(status TaskStatus) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if status != "" && t.Status != status {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}
