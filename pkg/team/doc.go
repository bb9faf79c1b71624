// Package team implements the orchestration core: agents, sessions,
// tasks, and the routing protocol that binds an undirected task to a
// dynamically chosen agent.
//
// Invariants:
// - Task status only moves along pending -> in_progress -> {completed | failed}.
// - completed_at is set exactly when a task reaches a terminal state.
// - outputs is non-empty only on completed tasks; error is set only on failed ones.
// - Context merges are right-biased: request keys beat session keys.
// - Target agents are validated before any task id is consumed.
//
// Usage:
//
//	svc, _ := team.NewService(team.ServiceConfig{Gateway: gw})
//	agent, _ := svc.RegisterAgent(team.RegisterAgentParams{
//		Name: "Copywriter", Role: "writer", Specialization: "blog posts",
//	})
//	task, _ := svc.ExecuteTask(ctx, team.ExecuteTaskParams{
//		AgentID: agent.ID, Description: "Write a tagline", Sync: true,
//	})
//	_ = task
package team
