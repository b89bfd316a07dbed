package app

import (
	"context"

	"github.com/macromate/macromate/internal/application/agent"
	"github.com/macromate/macromate/internal/application/doctor"
	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/infrastructure/ai"
	"github.com/macromate/macromate/internal/infrastructure/config"
	"github.com/macromate/macromate/internal/infrastructure/storage"
	"github.com/macromate/macromate/internal/pkg/clock"
	"github.com/macromate/macromate/internal/pkg/logger"
	"github.com/macromate/macromate/internal/ports"
)

// Container wires application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Store         *storage.Store
	Orchestrator  *agent.Orchestrator
	DoctorService *doctor.Service
	Profiles      ports.ProfileRepository
	FoodLog       ports.FoodLogRepository
	History       ports.ChatHistoryRepository
	Clock         ports.Clock
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	clk := clock.New()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	profiles := store.Profiles()
	foodLog := store.FoodLog()
	history := store.History()

	client := ai.NewClient(cfg, profiles, history, clk, log)
	executor := agent.NewExecutor(profiles, foodLog, clk, log)
	food := agent.NewFoodProcessor(foodLog, clk, log)
	orchestrator := agent.NewOrchestrator(client, executor, food, history, log)

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Store:         store,
		Orchestrator:  orchestrator,
		DoctorService: &doctor.Service{ConfigProvider: cfgLoader, Storage: store},
		Profiles:      profiles,
		FoodLog:       foodLog,
		History:       history,
		Clock:         clk,
		Logger:        log,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
