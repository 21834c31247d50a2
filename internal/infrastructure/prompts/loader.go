package prompts

import (
	_ "embed"
)

//go:embed planner.txt
var PlannerPrompt string

//go:embed coder.txt
var CoderPrompt string

//go:embed file.txt
var FilePrompt string

//go:embed web.txt
var WebPrompt string

//go:embed casual.txt
var CasualPrompt string
