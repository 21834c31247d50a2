package executors

import (
	"context"
	"strings"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
)

// failureSentinel is the literal each executor's system prompt instructs the
// model to emit when it could not do the work. Its presence flips the
// executor's success flag; it is a business failure, not a fault.
const failureSentinel = "TASK_FAILED"

// base carries the state shared by every executor: its own conversation
// context and the success flag and side-effect blocks of the most recent
// Process call.
type base struct {
	capability entity.Capability
	llm        output.LLMPort
	logger     output.LoggerPort

	messages []entity.Message
	success  bool
	blocks   []entity.Block
}

func newBase(capability entity.Capability, llm output.LLMPort, logger output.LoggerPort, systemPrompt string) base {
	return base{
		capability: capability,
		llm:        llm,
		logger:     logger.WithField("executor", capability.String()),
		messages: []entity.Message{
			{Role: entity.RoleSystem, Content: systemPrompt},
		},
	}
}

func (b *base) Capability() entity.Capability {
	return b.capability
}

func (b *base) Success() bool {
	return b.success
}

func (b *base) Blocks() []entity.Block {
	return b.blocks
}

// chat runs one turn against the model, accumulating conversation context
// across the executor's tasks within a run.
func (b *base) chat(ctx context.Context, prompt string) (string, string, error) {
	b.messages = append(b.messages, entity.Message{Role: entity.RoleUser, Content: prompt})
	resp, err := b.llm.Chat(ctx, output.ChatRequest{
		Messages:    b.messages,
		Temperature: 0.0,
	})
	if err != nil {
		return "", "", err
	}
	b.messages = append(b.messages, entity.Message{Role: entity.RoleAssistant, Content: resp.Answer})
	return resp.Answer, resp.Reasoning, nil
}

func (b *base) judge(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && !strings.Contains(answer, failureSentinel)
}
