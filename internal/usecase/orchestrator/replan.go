package orchestrator

import (
	"context"
	"fmt"
	"strconv"

	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
	"planner-agent/internal/usecase/planner"
)

const lastStepNote = "No task follow, this was the last step. If it failed add a task to recover."

// replan asks the model whether the remaining plan still holds after a
// completed task. An empty negotiation result means "no update" and keeps the
// current plan; a non-empty result replaces the plan wholesale. A completed
// id that is not representable as an index skips the replan with a warning,
// never a fault. Model faults propagate.
func (uc *UseCase) replan(
	ctx context.Context,
	negotiator *planner.Negotiator,
	goal string,
	plan entity.Plan,
	store *ResultStore,
	completedID string,
	succeeded bool,
) (entity.Plan, error) {
	index, err := strconv.Atoi(completedID)
	if err != nil {
		uc.logger.Warn("Invalid completed task id, skipping replan", "id", completedID, "error", err)
		return plan, nil
	}

	completedOutput, _ := store.Get(completedID)
	verdict := "failure"
	if succeeded {
		verdict = "success"
	}

	// Task ids are 1-based, so the completed id doubles as the 0-based index
	// of the positionally-next task.
	var nextNote string
	switch {
	case index == len(plan):
		nextNote = lastStepNote
	case index >= 0 && index < len(plan):
		nextNote = fmt.Sprintf("Next task is: %s.", plan[index].Description)
	default:
		nextNote = "No next task found."
	}

	directive := prompts.ComposeReplanDirective(prompts.ReplanData{
		Goal:            goal,
		CompletedID:     completedID,
		CompletedOutput: completedOutput,
		Verdict:         verdict,
		NextNote:        nextNote,
	})

	uc.logger.Info("Updating plan", "completedID", completedID, "verdict", verdict)
	newPlan, err := negotiator.MakePlan(ctx, directive)
	if err != nil {
		return nil, fmt.Errorf("replan negotiation failed: %w", err)
	}
	if len(newPlan) == 0 {
		uc.logger.Info("No plan update required", "completedID", completedID)
		return plan, nil
	}

	// Wholesale replacement. The directive asks the model to leave completed
	// tasks unchanged, but that contract is advisory, not enforced.
	uc.logger.Info("Plan updated", "tasks", len(newPlan))
	uc.metrics.ReplanApplied()
	return newPlan, nil
}
