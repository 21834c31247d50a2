package input

import (
	"context"

	"planner-agent/internal/domain/entity"
)

// GoalProcessor drives one goal from negotiation to final answer.
type GoalProcessor interface {
	Process(ctx context.Context, goal string) (*entity.GoalResult, error)
}
