package planner

import (
	"strconv"
	"strings"

	"planner-agent/internal/domain/entity"
)

// SynthesizePlan builds a plan heuristically from extracted heading lines when
// payload decoding yielded nothing. Each heading becomes one task, classified
// by keyword, and every task after the first depends on its predecessor: the
// synthesized plan is a strict chain.
func SynthesizePlan(headings []string) entity.Plan {
	plan := make(entity.Plan, 0, len(headings))
	for i, heading := range headings {
		var need []string
		if i > 0 {
			need = []string{strconv.Itoa(i)}
		}
		plan = append(plan, entity.Task{
			ID:           strconv.Itoa(i + 1),
			Capability:   classifyHeading(heading),
			Description:  heading,
			Dependencies: need,
		})
	}
	return plan
}

func classifyHeading(heading string) entity.Capability {
	lower := strings.ToLower(heading)
	switch {
	case strings.Contains(lower, "code") || strings.Contains(lower, "script"):
		return entity.CapabilityCoder
	case strings.Contains(lower, "search") || strings.Contains(lower, "web") || strings.Contains(lower, "internet"):
		return entity.CapabilityWeb
	case strings.Contains(lower, "file") || strings.Contains(lower, "folder"):
		return entity.CapabilityFile
	default:
		return entity.CapabilityCasual
	}
}
