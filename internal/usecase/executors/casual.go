package executors

import (
	"context"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
)

var _ output.ExecutorPort = (*Casual)(nil)

// Casual handles conversational tasks and everything remapped to it by
// capability normalization.
type Casual struct {
	base
}

func NewCasual(llm output.LLMPort, logger output.LoggerPort) *Casual {
	return &Casual{base: newBase(entity.CapabilityCasual, llm, logger, prompts.CasualPrompt)}
}

func (c *Casual) Process(ctx context.Context, prompt string, info map[string]string) (string, string, error) {
	c.blocks = nil
	c.success = false

	answer, reasoning, err := c.chat(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	c.success = c.judge(answer)
	return answer, reasoning, nil
}
