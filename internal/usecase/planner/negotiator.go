package planner

import (
	"context"
	"strings"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/metrics"
)

const (
	// NoUpdateMarker is the terminal token a model emits, anywhere in its
	// output, to signal that no plan or plan update is necessary.
	NoUpdateMarker = "NO_UPDATE"

	maxAttempts = 3

	retryInstruction = "Failed to parse the tasks. Please write down your task followed by a json plan within ```json. Do not ask for clarification.\n"
)

// Negotiator converts a natural-language instruction into a plan through a
// bounded-retry protocol: invoke the model, decode the payload, fall back to
// heading synthesis, and on total failure retry with a stricter corrective
// instruction. Conversation context accumulates across attempts and across
// replans within one run.
type Negotiator struct {
	llm      output.LLMPort
	logger   output.LoggerPort
	metrics  *metrics.Metrics
	messages []entity.Message
}

func NewNegotiator(llm output.LLMPort, logger output.LoggerPort, m *metrics.Metrics, systemPrompt string) *Negotiator {
	return &Negotiator{
		llm:     llm,
		logger:  logger,
		metrics: m,
		messages: []entity.Message{
			{Role: entity.RoleSystem, Content: systemPrompt},
		},
	}
}

// MakePlan negotiates a plan for the given instruction. An empty plan with a
// nil error is a valid outcome meaning "no plan": the terminal marker was
// seen, or all attempts were exhausted. A model fault propagates unmodified.
func (n *Negotiator) MakePlan(ctx context.Context, instruction string) (entity.Plan, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		n.messages = append(n.messages, entity.Message{Role: entity.RoleUser, Content: instruction})

		resp, err := n.llm.Chat(ctx, output.ChatRequest{
			Messages:    n.messages,
			Temperature: 0.0,
		})
		if err != nil {
			return nil, err
		}
		n.messages = append(n.messages, entity.Message{Role: entity.RoleAssistant, Content: resp.Answer})

		if strings.Contains(resp.Answer, NoUpdateMarker) {
			n.logger.Info("Model reported no plan update needed")
			return nil, nil
		}

		plan := DecodePlan(resp.Answer, n.logger)
		if len(plan) == 0 {
			if headings := TaskHeadings(resp.Answer); len(headings) > 0 {
				n.logger.Warn("Payload decoding failed, synthesizing plan from headings", "headings", len(headings))
				plan = SynthesizePlan(headings)
			}
		}
		if len(plan) > 0 {
			n.logger.Info("Plan negotiated", "tasks", len(plan), "attempt", attempt)
			n.metrics.PlanNegotiated()
			return plan, nil
		}

		n.logger.Warn("Failed to negotiate plan", "attempt", attempt, "maxAttempts", maxAttempts)
		n.metrics.NegotiationRetry()
		instruction = retryInstruction
	}

	n.logger.Error("Failed to negotiate a plan after all attempts", "attempts", maxAttempts)
	return nil, nil
}
