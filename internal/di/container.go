package di

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"planner-agent/internal/application/port/input"
	"planner-agent/internal/application/port/output"
	"planner-agent/internal/application/service"
	"planner-agent/internal/infrastructure/config"
	"planner-agent/internal/infrastructure/llm/openrouter"
	"planner-agent/internal/infrastructure/logger"
	"planner-agent/internal/infrastructure/prompts"
	"planner-agent/internal/infrastructure/webfetch"
	"planner-agent/internal/metrics"
	"planner-agent/internal/transport/httpapi"
	"planner-agent/internal/usecase/executors"
	"planner-agent/internal/usecase/orchestrator"
)

type Container struct {
	Logger    output.LoggerPort
	LLM       output.LLMPort
	Executors output.ExecutorRegistry
	Processor input.GoalProcessor
	Stop      *orchestrator.StopToken
	Server    *httpapi.Server
}

func NewContainer(cfg config.Config, narrator output.NarratorPort) (*Container, error) {
	log, err := logger.NewLoggerAdapter("planner")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.APIKey == "" {
		log.Close()
		return nil, fmt.Errorf("OPENROUTER_API_KEY is missing")
	}

	llmCfg := openrouter.DefaultConfig(cfg.APIKey, cfg.Model.Name)
	llmCfg.BaseURL = cfg.Model.BaseURL
	llmCfg.Logger = log
	llm := openrouter.New(llmCfg)

	registry := service.NewExecutorRegistry()
	registry.Register(executors.NewCoder(llm, log))
	registry.Register(executors.NewFile(llm, log, cfg.Workspace))
	registry.Register(executors.NewWeb(llm, log, webfetch.New()))
	registry.Register(executors.NewCasual(llm, log))

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(promRegistry)

	stop := orchestrator.NewStopToken()
	processor := orchestrator.New(llm, registry, log, narrator, m, stop, prompts.PlannerPrompt)

	server := httpapi.NewServer(processor, stop, log,
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	return &Container{
		Logger:    log,
		LLM:       llm,
		Executors: registry,
		Processor: processor,
		Stop:      stop,
		Server:    server,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

// ListenAndServe blocks serving the HTTP API.
func (c *Container) ListenAndServe(addr string) error {
	c.Logger.Info("HTTP API listening", "addr", addr)
	return http.ListenAndServe(addr, c.Server.Handler())
}
