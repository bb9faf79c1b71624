package team

import (
	"testing"
)

// Unit Tests for Store

func TestStoreAgents(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		s := NewStore()
		s.PutAgent(Agent{ID: "a1", Name: "Writer"})

		agent, ok := s.GetAgent("a1")
		if !ok {
			t.Fatal("expected agent to exist")
		}
		if agent.Name != "Writer" {
			t.Errorf("expected Writer, got %s", agent.Name)
		}
	})

	t.Run("overwrite does not grow roster", func(t *testing.T) {
		s := NewStore()
		s.PutAgent(Agent{ID: "a1", Name: "Writer", Role: "writer"})
		s.PutAgent(Agent{ID: "a1", Name: "Editor", Role: "editor"})

		if s.AgentCount() != 1 {
			t.Errorf("expected 1 agent, got %d", s.AgentCount())
		}

		agent, _ := s.GetAgent("a1")
		if agent.Name != "Editor" || agent.Role != "editor" {
			t.Errorf("expected overwritten fields, got %+v", agent)
		}
	})

	t.Run("list preserves registration order", func(t *testing.T) {
		s := NewStore()
		s.PutAgent(Agent{ID: "a1"})
		s.PutAgent(Agent{ID: "a2"})
		s.PutAgent(Agent{ID: "a3"})
		s.PutAgent(Agent{ID: "a2"}) // re-registration keeps position

		agents := s.ListAgents()
		if len(agents) != 3 {
			t.Fatalf("expected 3 agents, got %d", len(agents))
		}
		for i, want := range []string{"a1", "a2", "a3"} {
			if agents[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, agents[i].ID)
			}
		}
	})

	t.Run("first agent", func(t *testing.T) {
		s := NewStore()

		if _, ok := s.FirstAgent(); ok {
			t.Error("expected no first agent in empty store")
		}

		s.PutAgent(Agent{ID: "a1"})
		s.PutAgent(Agent{ID: "a2"})

		first, ok := s.FirstAgent()
		if !ok || first.ID != "a1" {
			t.Errorf("expected a1, got %+v ok=%v", first, ok)
		}
	})
}

func TestStoreSessions(t *testing.T) {
	s := NewStore()

	if _, ok := s.GetSession("missing"); ok {
		t.Error("expected miss for unknown session")
	}

	s.PutSession(Session{ID: "s1", Name: "campaign"})
	session, ok := s.GetSession("s1")
	if !ok || session.Name != "campaign" {
		t.Errorf("expected stored session, got %+v ok=%v", session, ok)
	}
}

func TestStoreTasks(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		s := NewStore()
		s.PutTask(Task{ID: "t1", Status: TaskPending})
		s.PutTask(Task{ID: "t2", Status: TaskCompleted})
		s.PutTask(Task{ID: "t3", Status: TaskCompleted})

		all := s.ListTasks("")
		if len(all) != 3 {
			t.Errorf("expected 3 tasks, got %d", len(all))
		}

		completed := s.ListTasks(TaskCompleted)
		if len(completed) != 2 {
			t.Errorf("expected 2 completed tasks, got %d", len(completed))
		}

		failed := s.ListTasks(TaskFailed)
		if len(failed) != 0 {
			t.Errorf("expected no failed tasks, got %d", len(failed))
		}
	})

	t.Run("overwrite by id", func(t *testing.T) {
		s := NewStore()
		s.PutTask(Task{ID: "t1", Status: TaskPending})
		s.PutTask(Task{ID: "t1", Status: TaskInProgress})

		if len(s.ListTasks("")) != 1 {
			t.Error("expected overwrite, not append")
		}

		task, _ := s.GetTask("t1")
		if task.Status != TaskInProgress {
			t.Errorf("expected in_progress, got %s", task.Status)
		}
	})
}
