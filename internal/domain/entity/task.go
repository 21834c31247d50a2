package entity

import "strings"

// Capability identifies the specialized executor a task is routed to.
type Capability string

const (
	CapabilityCoder  Capability = "coder"
	CapabilityFile   Capability = "file"
	CapabilityWeb    Capability = "web"
	CapabilityCasual Capability = "casual"
)

// PlannerName is the planner's own identity. A decoded task that assigns work
// back to the planner is remapped to CapabilityCasual.
const PlannerName = "planner"

func (c Capability) String() string {
	return string(c)
}

// ParseCapability normalizes a capability name taken from model output.
// Unknown names map to CapabilityCasual with ok=false so the caller can log a
// warning; the planner's own name maps to CapabilityCasual silently. The
// result is always one of the four registered capabilities, so a registry
// lookup on it cannot miss.
func ParseCapability(name string) (Capability, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(CapabilityCoder):
		return CapabilityCoder, true
	case string(CapabilityFile):
		return CapabilityFile, true
	case string(CapabilityWeb):
		return CapabilityWeb, true
	case string(CapabilityCasual):
		return CapabilityCasual, true
	case PlannerName:
		return CapabilityCasual, true
	default:
		return CapabilityCasual, false
	}
}

// Capabilities lists every routable capability.
func Capabilities() []Capability {
	return []Capability{CapabilityCoder, CapabilityFile, CapabilityWeb, CapabilityCasual}
}

// Task is one unit of planned work. Tasks are never mutated after creation;
// a replan produces new Task values.
type Task struct {
	ID           string
	Capability   Capability
	Description  string
	Dependencies []string
}

// Plan is an ordered sequence of tasks. The empty plan is a valid value
// meaning "no work" or "could not plan"; callers special-case it rather than
// treating it as an error. A replan replaces the plan wholesale.
type Plan []Task

// ExecutionOutcome is produced once per dispatched task.
type ExecutionOutcome struct {
	TaskID    string
	Succeeded bool
	Output    string
	Reasoning string
}

// GoalResult is the final outcome of processing one goal.
type GoalResult struct {
	Answer    string
	Reasoning string
	Success   bool
	Blocks    []Block
}
