package console

import (
	"fmt"

	"github.com/fatih/color"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
)

var _ output.NarratorPort = (*Console)(nil)

// Console narrates run progress to the terminal.
type Console struct{}

func New() *Console {
	return &Console{}
}

func (c *Console) ShowPlan(plan entity.Plan) {
	status := color.New(color.FgCyan, color.Bold)
	status.Println("\n━━━ P L A N ━━━")
	for _, task := range plan {
		fmt.Printf("  %s. [%s] %s\n", task.ID, task.Capability, task.Description)
	}
	status.Println("━━━ E N D ━━━")
}

func (c *Console) ShowTaskStart(task entity.Task) {
	info := color.New(color.FgBlue)
	info.Printf("\nI will %s.\n", task.Description)
	dim := color.New(color.Faint)
	dim.Printf("Assigned %s executor to task %s.\n", task.Capability, task.ID)
}

func (c *Console) ShowTaskResult(taskID string, success bool) {
	if success {
		green := color.New(color.FgGreen)
		green.Printf("✓ Task %s succeeded.\n", taskID)
		return
	}
	red := color.New(color.FgRed)
	red.Printf("✗ Task %s failed.\n", taskID)
}

func (c *Console) ShowWarning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("\n%s\n", msg)
}

func (c *Console) ShowAnswer(answer string) {
	bold := color.New(color.Bold)
	bold.Println("\nFINAL ANSWER:")
	fmt.Println(answer)
}

var _ output.NarratorPort = (*Silent)(nil)

// Silent discards narration; used when serving over HTTP.
type Silent struct{}

func NewSilent() *Silent {
	return &Silent{}
}

func (s *Silent) ShowPlan(entity.Plan)        {}
func (s *Silent) ShowTaskStart(entity.Task)   {}
func (s *Silent) ShowTaskResult(string, bool) {}
func (s *Silent) ShowWarning(string)          {}
func (s *Silent) ShowAnswer(string)           {}
