package orchestrator

import "planner-agent/internal/infrastructure/prompts"

// ResultStore maps task ids to execution output for one goal's run. It grows
// monotonically, is owned exclusively by the orchestration loop, and is
// discarded when the run ends.
type ResultStore struct {
	results map[string]string
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]string)}
}

func (s *ResultStore) Put(taskID, output string) {
	s.results[taskID] = output
}

func (s *ResultStore) Get(taskID string) (string, bool) {
	output, ok := s.results[taskID]
	return output, ok
}

func (s *ResultStore) Len() int {
	return len(s.results)
}

// Resolve returns the stored results for the given dependency ids, in the
// order declared. Ids with no stored result are silently omitted, never
// faulted.
func (s *ResultStore) Resolve(ids []string) []prompts.DependencyInfo {
	var infos []prompts.DependencyInfo
	for _, id := range ids {
		if output, ok := s.results[id]; ok {
			infos = append(infos, prompts.DependencyInfo{TaskID: id, Output: output})
		}
	}
	return infos
}
