package prompts

import (
	"bytes"
	"text/template"
)

// DependencyInfo is one resolved prior-task result embedded into an
// executor's prompt.
type DependencyInfo struct {
	TaskID string
	Output string
}

const taskPromptTemplate = `You are given information from earlier tasks:
{{if .Dependencies}}{{range .Dependencies}}	- According to task {{.TaskID}}:
{{.Output}}

{{end}}{{else}}No needed information.
{{end}}
Your task is:
{{.Description}}
`

var taskPrompt = template.Must(template.New("task").Parse(taskPromptTemplate))

type taskPromptData struct {
	Dependencies []DependencyInfo
	Description  string
}

// ComposeTaskPrompt embeds each resolved dependency output, labeled by its
// source task id, ahead of the task description.
func ComposeTaskPrompt(description string, dependencies []DependencyInfo) string {
	var buf bytes.Buffer
	if err := taskPrompt.Execute(&buf, taskPromptData{
		Dependencies: dependencies,
		Description:  description,
	}); err != nil {
		// The template is static and the data is plain strings; execution
		// cannot fail at runtime, but fall back to the bare description.
		return description
	}
	return buf.String()
}

const replanDirectiveTemplate = `Your goal is: {{.Goal}}
You previously made a plan, agents are currently working on it.
The last agent working on task {{.CompletedID}} did the following work:
{{.CompletedOutput}}
Task {{.CompletedID}} was a {{.Verdict}} according to the system interpreter.
{{.NextNote}}
Is the work done for task {{.CompletedID}} leading to success or failure? Did an agent fail with a task?
If agent work was good: answer "NO_UPDATE"
If agent work is leading to failure: update the plan.
If a task failed add a task to try again or recover from failure. You might have near identical tasks twice.
The plan should be within ` + "```json" + ` like before.
You need to rewrite the whole plan, but only change the tasks after task {{.CompletedID}}.
Make the plan the same length as the original one or with only one additional step.
Do not change past tasks. Change next tasks.
`

var replanDirective = template.Must(template.New("replan").Parse(replanDirectiveTemplate))

// ReplanData parameterizes the directive sent to the model after each
// completed task.
type ReplanData struct {
	Goal            string
	CompletedID     string
	CompletedOutput string
	Verdict         string
	NextNote        string
}

func ComposeReplanDirective(data ReplanData) string {
	var buf bytes.Buffer
	if err := replanDirective.Execute(&buf, data); err != nil {
		return data.Goal
	}
	return buf.String()
}
