package output

import "planner-agent/internal/domain/entity"

// NarratorPort surfaces run progress to the user (console, status line).
type NarratorPort interface {
	ShowPlan(plan entity.Plan)
	ShowTaskStart(task entity.Task)
	ShowTaskResult(taskID string, success bool)
	ShowWarning(msg string)
	ShowAnswer(answer string)
}
