package orchestrator

import (
	"context"
	"fmt"

	"planner-agent/internal/application/port/input"
	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
	"planner-agent/internal/metrics"
	"planner-agent/internal/usecase/planner"
)

var _ input.GoalProcessor = (*UseCase)(nil)

const (
	successMarker = "\nAgent succeeded with task."
	failureMarker = "\nAgent failed with task (Error detected)."

	// NoPlanAnswer is the user-visible result when negotiation exhausts all
	// attempts without producing a plan.
	NoPlanAnswer = "Failed to make a plan. Clarify your request and try again."
)

// UseCase drives one goal to completion: negotiate a plan, dispatch each task
// in strict plan order, record its outcome, and replan after every task.
// Exactly one task is in flight at any time.
type UseCase struct {
	llm           output.LLMPort
	executors     output.ExecutorRegistry
	logger        output.LoggerPort
	narrator      output.NarratorPort
	metrics       *metrics.Metrics
	stop          *StopToken
	plannerPrompt string
}

func New(
	llm output.LLMPort,
	executors output.ExecutorRegistry,
	logger output.LoggerPort,
	narrator output.NarratorPort,
	m *metrics.Metrics,
	stop *StopToken,
	plannerPrompt string,
) *UseCase {
	return &UseCase{
		llm:           llm,
		executors:     executors,
		logger:        logger,
		narrator:      narrator,
		metrics:       m,
		stop:          stop,
		plannerPrompt: plannerPrompt,
	}
}

// Process runs the orchestration loop for one goal. The returned error is a
// fault (model or executor failure) that aborted the run; an unplannable goal
// is not an error but a GoalResult carrying NoPlanAnswer.
func (uc *UseCase) Process(ctx context.Context, goal string) (*entity.GoalResult, error) {
	uc.stop.Reset()

	// Negotiation state, including accumulated conversation, lives for
	// exactly one goal.
	negotiator := planner.NewNegotiator(uc.llm, uc.logger, uc.metrics, uc.plannerPrompt)

	uc.logger.Info("Making a plan", "goal", goal)
	plan, err := negotiator.MakePlan(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("plan negotiation failed: %w", err)
	}
	if len(plan) == 0 {
		uc.logger.Warn("No plan produced for goal", "goal", goal)
		return &entity.GoalResult{Answer: NoPlanAnswer, Success: false}, nil
	}
	uc.narrator.ShowPlan(plan)

	store := NewResultStore()
	var last *entity.ExecutionOutcome
	var lastExecutor output.ExecutorPort

	for i := 0; i < len(plan); i++ {
		if uc.stop.Stopped() {
			uc.logger.Warn("Stop requested, ending run", "completedTasks", i)
			uc.narrator.ShowWarning("Requested stop.")
			break
		}

		task := plan[i]
		uc.narrator.ShowTaskStart(task)

		outcome, executor, err := uc.dispatch(ctx, task, store)
		if err != nil {
			// A fault aborts the whole run; no retry.
			return nil, err
		}
		store.Put(task.ID, outcome.Output)
		uc.metrics.TaskDispatched(task.Capability, outcome.Succeeded)
		uc.narrator.ShowTaskResult(task.ID, outcome.Succeeded)
		last = outcome
		lastExecutor = executor

		plan, err = uc.replan(ctx, negotiator, goal, plan, store, task.ID, outcome.Succeeded)
		if err != nil {
			return nil, err
		}
	}

	if last == nil {
		// Stop requested before the first dispatch.
		return &entity.GoalResult{Answer: "", Success: false}, nil
	}

	result := &entity.GoalResult{
		Answer:    last.Output,
		Reasoning: last.Reasoning,
		Success:   last.Succeeded,
		Blocks:    lastExecutor.Blocks(),
	}
	uc.narrator.ShowAnswer(result.Answer)
	return result, nil
}

// dispatch routes one task to its executor with the dependency context
// resolved from the store. Executor and model faults propagate unmodified.
func (uc *UseCase) dispatch(ctx context.Context, task entity.Task, store *ResultStore) (*entity.ExecutionOutcome, output.ExecutorPort, error) {
	executor, ok := uc.executors.Get(task.Capability)
	if !ok {
		// Capabilities are normalized at decode time; a miss means the
		// registry was wired without a required executor.
		return nil, nil, fmt.Errorf("no executor registered for capability %q", task.Capability)
	}

	infos := store.Resolve(task.Dependencies)
	prompt := prompts.ComposeTaskPrompt(task.Description, infos)

	uc.logger.Info("Dispatching task",
		"id", task.ID,
		"capability", task.Capability,
		"dependencies", len(task.Dependencies),
		"resolved", len(infos),
	)

	answer, reasoning, err := executor.Process(ctx, prompt, nil)
	if err != nil {
		return nil, nil, err
	}

	succeeded := executor.Success()
	if succeeded {
		answer += successMarker
	} else {
		answer += failureMarker
	}

	uc.logger.Info("Task completed", "id", task.ID, "success", succeeded)
	return &entity.ExecutionOutcome{
		TaskID:    task.ID,
		Succeeded: succeeded,
		Output:    answer,
		Reasoning: reasoning,
	}, executor, nil
}
