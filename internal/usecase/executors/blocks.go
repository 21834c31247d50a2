package executors

import "strings"

type fencedBlock struct {
	Tag     string
	Content string
}

// extractFencedBlocks pulls every ```tag ... ``` block out of an answer. An
// unterminated final fence is carried through to the end of the text.
func extractFencedBlocks(text string) []fencedBlock {
	var blocks []fencedBlock
	rest := text
	for {
		start := strings.Index(rest, "```")
		if start == -1 {
			break
		}
		rest = rest[start+3:]

		tag := ""
		if newline := strings.Index(rest, "\n"); newline != -1 {
			tag = strings.TrimSpace(rest[:newline])
			rest = rest[newline+1:]
		}

		end := strings.Index(rest, "```")
		if end == -1 {
			blocks = append(blocks, fencedBlock{Tag: tag, Content: strings.TrimRight(rest, "\n")})
			break
		}
		blocks = append(blocks, fencedBlock{Tag: tag, Content: strings.TrimRight(rest[:end], "\n")})
		rest = rest[end+3:]
	}
	return blocks
}
