package executors

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/infrastructure/prompts"
)

var _ output.ExecutorPort = (*Web)(nil)

const maxFetchedPages = 3

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>)\]]+`)

// PageFetcher retrieves the readable text of a web page.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (title, text string, err error)
}

// Web answers research tasks. URLs mentioned in the task prompt are fetched
// and their extracted text is handed to the model alongside the task; each
// fetch is reported as a side-effect record. Fetch failures are soft: the
// model is told the page was unreachable.
type Web struct {
	base
	fetcher PageFetcher
}

func NewWeb(llm output.LLMPort, logger output.LoggerPort, fetcher PageFetcher) *Web {
	return &Web{
		base:    newBase(entity.CapabilityWeb, llm, logger, prompts.WebPrompt),
		fetcher: fetcher,
	}
}

func (w *Web) Process(ctx context.Context, prompt string, info map[string]string) (string, string, error) {
	w.blocks = nil
	w.success = false

	if pages := w.fetchPages(ctx, prompt); pages != "" {
		prompt = pages + "\n" + prompt
	}

	answer, reasoning, err := w.chat(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	w.success = w.judge(answer)
	w.logger.Info("Web task processed", "success", w.success, "pages", len(w.blocks))
	return answer, reasoning, nil
}

func (w *Web) fetchPages(ctx context.Context, prompt string) string {
	urls := urlPattern.FindAllString(prompt, maxFetchedPages)
	if len(urls) == 0 {
		return ""
	}

	var sections []string
	for _, url := range urls {
		title, text, err := w.fetcher.FetchText(ctx, url)
		if err != nil {
			w.logger.Warn("Page fetch failed", "url", url, "error", err)
			w.blocks = append(w.blocks, entity.Block{
				Tool:     "web_fetch",
				Content:  url,
				Feedback: fmt.Sprintf("Fetch failed: %v", err),
				Success:  false,
			})
			sections = append(sections, fmt.Sprintf("Page %s could not be fetched.", url))
			continue
		}
		w.blocks = append(w.blocks, entity.Block{
			Tool:     "web_fetch",
			Content:  url,
			Feedback: fmt.Sprintf("Fetched: %s", title),
			Success:  true,
		})
		sections = append(sections, fmt.Sprintf("Content of %s (%s):\n%s", url, title, text))
	}
	return strings.Join(sections, "\n\n")
}
