package planner

import (
	"context"
	"fmt"

	"planner-agent/internal/application/port/output"
)

// testLogger records warnings so tests can assert on degraded paths.
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

// scriptedLLM returns canned answers in order and counts calls.
type scriptedLLM struct {
	answers []string
	err     error
	calls   int
}

func (s *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.answers) {
		return nil, fmt.Errorf("scripted llm exhausted after %d calls", s.calls)
	}
	answer := s.answers[s.calls]
	s.calls++
	return &output.ChatResponse{Answer: answer}, nil
}
