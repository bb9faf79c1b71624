// Package completion defines the boundary to external text-generation
// services and provides OpenAI and Anthropic implementations.
//
// Invariants:
// - Gateways accept only system and user roles.
// - Provider error messages are surfaced verbatim to callers.
package completion
