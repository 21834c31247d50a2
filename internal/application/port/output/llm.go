package output

import (
	"context"

	"planner-agent/internal/domain/entity"
)

// LLMPort is the model-invocation collaborator. Failures surface as errors
// and are treated as faults by callers.
type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Temperature float32
}

type ChatResponse struct {
	Answer    string
	Reasoning string
}
