package executors

import (
	"context"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
)

var _ output.ExecutorPort = (*Coder)(nil)

// Coder produces code for a task and reports each fenced code block as a
// structured side-effect record.
type Coder struct {
	base
}

func NewCoder(llm output.LLMPort, logger output.LoggerPort) *Coder {
	return &Coder{base: newBase(entity.CapabilityCoder, llm, logger, prompts.CoderPrompt)}
}

func (c *Coder) Process(ctx context.Context, prompt string, info map[string]string) (string, string, error) {
	c.blocks = nil
	c.success = false

	answer, reasoning, err := c.chat(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	c.success = c.judge(answer)
	for _, block := range extractFencedBlocks(answer) {
		tool := block.Tag
		if tool == "" {
			tool = "code"
		}
		c.blocks = append(c.blocks, entity.Block{
			Tool:     tool,
			Content:  block.Content,
			Feedback: "Code block captured, not executed.",
			Success:  c.success,
		})
	}

	c.logger.Info("Coder task processed", "success", c.success, "blocks", len(c.blocks))
	return answer, reasoning, nil
}
