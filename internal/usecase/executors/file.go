package executors

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
)

var _ output.ExecutorPort = (*File)(nil)

const maxListedFiles = 200

// File handles file and folder tasks, grounded on a listing of the confined
// workspace directory. Proposed operations come back as fenced blocks tagged
// file_write, file_read, file_move, file_delete, or folder_create and are
// reported as side-effect records.
type File struct {
	base
	workspace string
}

func NewFile(llm output.LLMPort, logger output.LoggerPort, workspace string) *File {
	return &File{
		base:      newBase(entity.CapabilityFile, llm, logger, prompts.FilePrompt),
		workspace: workspace,
	}
}

func (f *File) Process(ctx context.Context, prompt string, info map[string]string) (string, string, error) {
	f.blocks = nil
	f.success = false

	listing := f.workspaceListing()
	answer, reasoning, err := f.chat(ctx, fmt.Sprintf("Workspace listing:\n%s\n\n%s", listing, prompt))
	if err != nil {
		return "", "", err
	}

	f.success = f.judge(answer)
	for _, block := range extractFencedBlocks(answer) {
		if !strings.HasPrefix(block.Tag, "file_") && block.Tag != "folder_create" {
			continue
		}
		f.blocks = append(f.blocks, entity.Block{
			Tool:     block.Tag,
			Content:  block.Content,
			Feedback: "Operation proposed for the workspace.",
			Success:  f.success,
		})
	}

	f.logger.Info("File task processed", "success", f.success, "operations", len(f.blocks))
	return answer, reasoning, nil
}

// workspaceListing walks the workspace up to maxListedFiles entries. A
// missing or unreadable workspace yields a note rather than a fault.
func (f *File) workspaceListing() string {
	if f.workspace == "" {
		return "(no workspace configured)"
	}

	var entries []string
	err := filepath.WalkDir(f.workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(f.workspace, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if d.IsDir() {
			rel += "/"
		}
		entries = append(entries, rel)
		if len(entries) >= maxListedFiles {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		f.logger.Warn("Failed to list workspace", "workspace", f.workspace, "error", err)
		return "(workspace unreadable)"
	}
	if len(entries) == 0 {
		return "(empty workspace)"
	}
	return strings.Join(entries, "\n")
}
