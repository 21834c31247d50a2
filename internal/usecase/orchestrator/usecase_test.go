package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/application/service"
	"planner-agent/internal/domain/entity"
)

type testLogger struct {
	warnings []string
}

func (l *testLogger) Debug(msg string, args ...any) {}
func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Warn(msg string, args ...any) {
	l.warnings = append(l.warnings, msg)
}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) WithField(key string, value any) output.LoggerPort {
	return l
}
func (l *testLogger) Close() error { return nil }

type testNarrator struct {
	plansShown int
	tasks      []string
}

func (n *testNarrator) ShowPlan(plan entity.Plan) { n.plansShown++ }
func (n *testNarrator) ShowTaskStart(task entity.Task) {
	n.tasks = append(n.tasks, task.ID)
}
func (n *testNarrator) ShowTaskResult(taskID string, success bool) {}
func (n *testNarrator) ShowWarning(msg string)                     {}
func (n *testNarrator) ShowAnswer(answer string)                   {}

// scriptedLLM returns canned answers in order and records every user turn.
type scriptedLLM struct {
	answers   []string
	calls     int
	userTurns []string
}

func (s *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == entity.RoleUser {
			s.userTurns = append(s.userTurns, req.Messages[i].Content)
			break
		}
	}
	if s.calls >= len(s.answers) {
		return nil, fmt.Errorf("scripted llm exhausted after %d calls", s.calls)
	}
	answer := s.answers[s.calls]
	s.calls++
	return &output.ChatResponse{Answer: answer, Reasoning: "because"}, nil
}

type fakeExecutor struct {
	capability entity.Capability
	answer     string
	succeed    bool
	err        error
	blocks     []entity.Block
	prompts    []string
	onProcess  func()
}

func (f *fakeExecutor) Capability() entity.Capability { return f.capability }

func (f *fakeExecutor) Process(ctx context.Context, prompt string, info map[string]string) (string, string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.onProcess != nil {
		f.onProcess()
	}
	if f.err != nil {
		return "", "", f.err
	}
	return f.answer, "reasoned", nil
}

func (f *fakeExecutor) Success() bool          { return f.succeed }
func (f *fakeExecutor) Blocks() []entity.Block { return f.blocks }

func newTestUseCase(llm output.LLMPort, execs ...*fakeExecutor) (*UseCase, *testLogger, *testNarrator, *StopToken) {
	registry := service.NewExecutorRegistry()
	for _, e := range execs {
		registry.Register(e)
	}
	log := &testLogger{}
	narrator := &testNarrator{}
	stop := NewStopToken()
	uc := New(llm, registry, log, narrator, nil, stop, "planner system prompt")
	return uc, log, narrator, stop
}

func planAnswer(tasks string) string {
	return "```json\n{\"plan\": [" + tasks + "]}\n```"
}

func TestProcess_SingleTaskHappyPath(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "coder", "id": "1", "task": "write script", "need": []}`),
		"NO_UPDATE",
	}}
	coder := &fakeExecutor{
		capability: entity.CapabilityCoder,
		answer:     "print('hello')",
		succeed:    true,
		blocks:     []entity.Block{{Tool: "python", Content: "print('hello')", Success: true}},
	}
	uc, _, narrator, _ := newTestUseCase(llm, coder)

	result, err := uc.Process(context.Background(), "write a greeting script")
	require.NoError(t, err)

	assert.Equal(t, "print('hello')"+successMarker, result.Answer)
	assert.True(t, result.Success)
	assert.Len(t, result.Blocks, 1)
	assert.Equal(t, 2, llm.calls, "one negotiation call plus one replan call")
	assert.Equal(t, []string{"1"}, narrator.tasks, "loop ends after one iteration")
	require.Len(t, coder.prompts, 1)
	assert.Contains(t, coder.prompts[0], "write script")
	assert.Contains(t, coder.prompts[0], "No needed information")
}

func TestProcess_NoPlanEndsImmediately(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		"cannot help with that",
		"still nothing useful",
		"nope",
	}}
	coder := &fakeExecutor{capability: entity.CapabilityCoder}
	uc, _, _, _ := newTestUseCase(llm, coder)

	result, err := uc.Process(context.Background(), "impossible goal")
	require.NoError(t, err)

	assert.Equal(t, NoPlanAnswer, result.Answer)
	assert.False(t, result.Success)
	assert.Equal(t, 3, llm.calls, "negotiation exhausts its attempts")
	assert.Empty(t, coder.prompts, "no task may be dispatched")
}

func TestProcess_DependencyContextResolution(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "web", "id": "1", "task": "search for X", "need": []},` +
			`{"agent": "casual", "id": "2", "task": "summarize findings", "need": ["1", "ghost"]}`),
		"NO_UPDATE",
		"NO_UPDATE",
	}}
	web := &fakeExecutor{capability: entity.CapabilityWeb, answer: "X is a thing", succeed: true}
	casual := &fakeExecutor{capability: entity.CapabilityCasual, answer: "summary", succeed: true}
	uc, _, _, _ := newTestUseCase(llm, web, casual)

	result, err := uc.Process(context.Background(), "research X")
	require.NoError(t, err)

	require.Len(t, casual.prompts, 1)
	// The summarizer sees task 1's stored output, labeled by id; the
	// unresolved "ghost" id is silently omitted.
	assert.Contains(t, casual.prompts[0], "According to task 1")
	assert.Contains(t, casual.prompts[0], "X is a thing"+successMarker)
	assert.NotContains(t, casual.prompts[0], "ghost")
	assert.Equal(t, "summary"+successMarker, result.Answer)
}

func TestProcess_FailedTaskContinuesRun(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "coder", "id": "1", "task": "write it", "need": []},` +
			`{"agent": "casual", "id": "2", "task": "explain failure", "need": ["1"]}`),
		"NO_UPDATE",
		"NO_UPDATE",
	}}
	coder := &fakeExecutor{capability: entity.CapabilityCoder, answer: "broken", succeed: false}
	casual := &fakeExecutor{capability: entity.CapabilityCasual, answer: "it broke", succeed: true}
	uc, _, _, _ := newTestUseCase(llm, coder, casual)

	result, err := uc.Process(context.Background(), "do work")
	require.NoError(t, err, "business failure is not a fault")

	require.Len(t, casual.prompts, 1)
	assert.Contains(t, casual.prompts[0], failureMarker)
	assert.True(t, result.Success)

	// The replan directive after the failed task names the failure.
	require.GreaterOrEqual(t, len(llm.userTurns), 2)
	assert.Contains(t, llm.userTurns[1], "failure")
	assert.Contains(t, llm.userTurns[1], "Next task is: explain failure.")
}

func TestProcess_ReplanReplacesRemainingPlan(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "coder", "id": "1", "task": "write it", "need": []},` +
			`{"agent": "casual", "id": "2", "task": "old second step", "need": ["1"]}`),
		// Replan after task 1 rewrites the remainder.
		planAnswer(`{"agent": "coder", "id": "1", "task": "write it", "need": []},` +
			`{"agent": "web", "id": "2", "task": "new second step", "need": ["1"]}`),
		"NO_UPDATE",
	}}
	coder := &fakeExecutor{capability: entity.CapabilityCoder, answer: "done", succeed: true}
	casual := &fakeExecutor{capability: entity.CapabilityCasual, answer: "old", succeed: true}
	web := &fakeExecutor{capability: entity.CapabilityWeb, answer: "new", succeed: true}
	uc, _, _, _ := newTestUseCase(llm, coder, casual, web)

	result, err := uc.Process(context.Background(), "do work")
	require.NoError(t, err)

	assert.Empty(t, casual.prompts, "replaced task must not run")
	assert.Len(t, web.prompts, 1, "replacement task runs instead")
	assert.Equal(t, "new"+successMarker, result.Answer)
}

func TestProcess_MalformedCompletedIDSkipsReplan(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "casual", "id": "abc", "task": "odd id", "need": []}`),
	}}
	casual := &fakeExecutor{capability: entity.CapabilityCasual, answer: "ok", succeed: true}
	uc, log, _, _ := newTestUseCase(llm, casual)

	result, err := uc.Process(context.Background(), "goal")
	require.NoError(t, err, "malformed id never raises")

	assert.Equal(t, "ok"+successMarker, result.Answer)
	assert.Equal(t, 1, llm.calls, "replan step skipped entirely")
	assert.Contains(t, strings.Join(log.warnings, "\n"), "Invalid completed task id")
}

func TestProcess_ExecutorFaultAbortsRun(t *testing.T) {
	fault := errors.New("executor exploded")
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "coder", "id": "1", "task": "write it", "need": []},` +
			`{"agent": "casual", "id": "2", "task": "never runs", "need": []}`),
	}}
	coder := &fakeExecutor{capability: entity.CapabilityCoder, err: fault}
	casual := &fakeExecutor{capability: entity.CapabilityCasual}
	uc, _, _, _ := newTestUseCase(llm, coder, casual)

	_, err := uc.Process(context.Background(), "do work")
	require.ErrorIs(t, err, fault, "fault propagates unmodified")
	assert.Empty(t, casual.prompts, "remaining plan abandoned")
}

func TestProcess_StopHonoredBetweenIterations(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "coder", "id": "1", "task": "first", "need": []},` +
			`{"agent": "casual", "id": "2", "task": "second", "need": []}`),
		"NO_UPDATE",
	}}
	var stop *StopToken
	coder := &fakeExecutor{capability: entity.CapabilityCoder, answer: "partial", succeed: true}
	// Stop lands while task 1 is in flight; the dispatch still completes.
	coder.onProcess = func() { stop.Stop() }
	casual := &fakeExecutor{capability: entity.CapabilityCasual}

	uc, _, _, st := newTestUseCase(llm, coder, casual)
	stop = st

	result, err := uc.Process(context.Background(), "do work")
	require.NoError(t, err)

	assert.Len(t, coder.prompts, 1, "in-flight task ran to completion")
	assert.Empty(t, casual.prompts, "stop honored before the next task")
	assert.Equal(t, "partial"+successMarker, result.Answer)
}

func TestProcess_LastStepReplanNote(t *testing.T) {
	llm := &scriptedLLM{answers: []string{
		planAnswer(`{"agent": "casual", "id": "1", "task": "only step", "need": []}`),
		"NO_UPDATE",
	}}
	casual := &fakeExecutor{capability: entity.CapabilityCasual, answer: "done", succeed: true}
	uc, _, _, _ := newTestUseCase(llm, casual)

	_, err := uc.Process(context.Background(), "goal")
	require.NoError(t, err)

	require.Len(t, llm.userTurns, 2)
	assert.Contains(t, llm.userTurns[1], lastStepNote)
}
