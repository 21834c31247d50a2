package service

import (
	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
)

var _ output.ExecutorRegistry = (*ExecutorRegistryImpl)(nil)

// ExecutorRegistryImpl routes capabilities to executors. Decoded capabilities
// are normalized to the closed enum before lookup, so Get cannot miss for a
// plan produced by the planner.
type ExecutorRegistryImpl struct {
	executors map[entity.Capability]output.ExecutorPort
}

func NewExecutorRegistry() *ExecutorRegistryImpl {
	return &ExecutorRegistryImpl{
		executors: make(map[entity.Capability]output.ExecutorPort),
	}
}

func (r *ExecutorRegistryImpl) Register(executor output.ExecutorPort) {
	r.executors[executor.Capability()] = executor
}

func (r *ExecutorRegistryImpl) Get(capability entity.Capability) (output.ExecutorPort, bool) {
	executor, ok := r.executors[capability]
	return executor, ok
}

func (r *ExecutorRegistryImpl) List() []entity.Capability {
	result := make([]entity.Capability, 0, len(r.executors))
	for capability := range r.executors {
		result = append(result, capability)
	}
	return result
}
