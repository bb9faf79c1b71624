package team

// MergeContext combines session-scoped context with request-scoped
// overrides. The merge is a shallow union: request keys win on
// collision, non-overlapping keys from both sides are preserved.
// Neither input map is mutated.
func MergeContext(session, request map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(session)+len(request))
	for k, v := range session {
		merged[k] = v
	}
	for k, v := range request {
		merged[k] = v
	}
	return merged
}
