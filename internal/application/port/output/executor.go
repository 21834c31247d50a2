package output

import (
	"context"

	"planner-agent/internal/domain/entity"
)

// ExecutorPort is one specialized executor collaborator. Process runs a single
// task prompt to completion; Success and Blocks report on the most recent
// Process call. Executors are owned by a single orchestration loop and are
// never called concurrently.
type ExecutorPort interface {
	Capability() entity.Capability
	Process(ctx context.Context, prompt string, info map[string]string) (answer, reasoning string, err error)
	Success() bool
	Blocks() []entity.Block
}

// ExecutorRegistry maps a capability to its executor.
type ExecutorRegistry interface {
	Register(executor ExecutorPort)
	Get(capability entity.Capability) (ExecutorPort, bool)
	List() []entity.Capability
}
