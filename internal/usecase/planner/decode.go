package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
)

const fenceTag = "```json"

// DecodePlan extracts and parses structured plan payloads embedded in model
// text. Every candidate block is parsed independently: a malformed block is
// logged and skipped, never aborting the remaining blocks. The returned plan
// may be empty.
func DecodePlan(text string, log output.LoggerPort) entity.Plan {
	var plan entity.Plan
	for _, block := range payloadBlocks(text) {
		value, err := parseBlock(block)
		if err != nil {
			log.Warn("Skipping unparseable plan block", "error", err)
			continue
		}
		plan = append(plan, normalizePlan(value, len(plan), log)...)
	}
	return plan
}

// payloadBlocks locates fenced json blocks in the text. When no fence is
// present it falls back to a single candidate sliced from the first '{' to
// the last '}' of the whole text.
func payloadBlocks(text string) []string {
	var blocks []string
	rest := text
	for {
		start := strings.Index(rest, fenceTag)
		if start == -1 {
			break
		}
		rest = rest[start+len(fenceTag):]
		end := strings.Index(rest, "```")
		if end == -1 {
			blocks = append(blocks, rest)
			rest = ""
			break
		}
		blocks = append(blocks, rest[:end])
		rest = rest[end+3:]
	}
	if len(blocks) > 0 {
		return blocks
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}
	return []string{text[start : end+1]}
}

// parseBlock attempts a strict JSON parse, then a permissive literal parse as
// secondary fallback.
func parseBlock(block string) (map[string]any, error) {
	clean := strings.TrimSpace(stripFences(block))

	var value map[string]any
	if err := json.Unmarshal([]byte(clean), &value); err == nil {
		return value, nil
	}
	normalized, err := normalizeLiteral(clean)
	if err != nil {
		return nil, fmt.Errorf("literal normalization failed: %w", err)
	}
	if err := json.Unmarshal([]byte(normalized), &value); err != nil {
		return nil, fmt.Errorf("both strict and permissive parse failed: %w", err)
	}
	return value, nil
}

func stripFences(block string) string {
	block = strings.ReplaceAll(block, fenceTag, "")
	return strings.ReplaceAll(block, "```", "")
}

// normalizePlan converts the "plan" list of a parsed payload into tasks.
// offset is the number of tasks already accumulated from earlier blocks, used
// for generated ids.
func normalizePlan(value map[string]any, offset int, log output.LoggerPort) entity.Plan {
	rawPlan, ok := value["plan"].([]any)
	if !ok {
		return nil
	}

	var tasks entity.Plan
	for _, rawItem := range rawPlan {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}

		description, ok := stringField(item, "task")
		if !ok {
			// A task without a description is dropped in isolation; the
			// remaining items still decode.
			log.Warn("Skipping plan item without task description")
			continue
		}

		capability, known := entity.ParseCapability(stringOr(item, "agent", ""))
		if !known {
			log.Warn("Unknown capability, remapping to casual", "agent", item["agent"])
		}

		id := stringOr(item, "id", strconv.Itoa(offset+len(tasks)+1))

		tasks = append(tasks, entity.Task{
			ID:           id,
			Capability:   capability,
			Description:  description,
			Dependencies: stringList(item, "need"),
		})
	}
	return tasks
}

func stringField(item map[string]any, key string) (string, bool) {
	raw, ok := item[key]
	if !ok {
		return "", false
	}
	return anyToString(raw), true
}

func stringOr(item map[string]any, key, fallback string) string {
	if value, ok := stringField(item, key); ok && value != "" {
		return value
	}
	return fallback
}

// stringList carries the optional "need" list verbatim, stringifying numeric
// ids the model may have emitted unquoted.
func stringList(item map[string]any, key string) []string {
	raw, ok := item[key].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(raw))
	for _, entry := range raw {
		result = append(result, anyToString(entry))
	}
	return result
}

func anyToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
