package agent

import (
	"context"
	"fmt"

	"github.com/macromate/macromate/internal/domain"
	"github.com/macromate/macromate/internal/ports"
)

// Orchestrator drives one user turn: completion, parse, food application,
// command execution. Calls are expected to be serialized by the caller; the
// session counters are plain fields scoped to this instance.
type Orchestrator struct {
	client   ports.CompletionClient
	executor *Executor
	food     *FoodProcessor
	history  ports.ChatHistoryRepository
	log      ports.Logger

	messagesProcessed int
	commandsExecuted  int
	entriesAdded      int
}

// NewOrchestrator builds an Orchestrator.
func NewOrchestrator(
	client ports.CompletionClient,
	executor *Executor,
	food *FoodProcessor,
	history ports.ChatHistoryRepository,
	log ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		client:   client,
		executor: executor,
		food:     food,
		history:  history,
		log:      log,
	}
}

// ProcessMessage runs the full pipeline for one user message. Food entries
// are applied before commands so the AddFood de-duplication below can observe
// the outcome.
func (o *Orchestrator) ProcessMessage(ctx context.Context, text string) (domain.TurnResult, error) {
	raw, err := o.client.Complete(ctx, text, ports.CompletionOptions{})
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("completion failed: %w", err)
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("parse model response: %w", err)
	}

	foodStatus := domain.FoodProcessingStatus{Kind: domain.FoodNone}
	if len(resp.FoodEntries) > 0 {
		foodStatus = o.food.Process(ctx, resp.FoodEntries)
		if foodStatus.Kind == domain.FoodAdded {
			o.entriesAdded += foodStatus.AddedCount
		}
	}

	// The model often emits add_food alongside a non-empty food_entries
	// list; the entries are the actionable payload, so the command is
	// recorded as skipped rather than double-inserting.
	skipAddFood := foodStatus.Kind == domain.FoodAdded
	results := o.runCommands(ctx, resp, skipAddFood)

	o.messagesProcessed++
	o.log.Info("turn processed", map[string]interface{}{
		"entries":  foodStatus.AddedCount,
		"commands": len(results),
	})

	return domain.TurnResult{
		Response:       resp,
		FoodStatus:     foodStatus,
		CommandResults: results,
	}, nil
}

// SendMessageOnly runs just the completion step without persisting history.
func (o *Orchestrator) SendMessageOnly(ctx context.Context, text string) (string, error) {
	return o.client.Complete(ctx, text, ports.CompletionOptions{SkipHistory: true})
}

// ExecuteResponseCommands executes a response's command list standalone, with
// AddFood de-duplication forced off.
func (o *Orchestrator) ExecuteResponseCommands(ctx context.Context, resp domain.AgentResponse) []domain.CommandResult {
	return o.runCommands(ctx, resp, false)
}

// ExecuteDirectCommand runs one command with no food-entry context, for
// UI-triggered actions that never touch the model.
func (o *Orchestrator) ExecuteDirectCommand(ctx context.Context, cmd domain.Command) domain.CommandResult {
	result := o.executor.Execute(ctx, cmd, nil)
	if result.Status != domain.CommandSkipped {
		o.commandsExecuted++
	}
	return result
}

// ClearChatHistory wipes the conversation and resets the session counters.
func (o *Orchestrator) ClearChatHistory(ctx context.Context) error {
	if err := o.history.Clear(ctx); err != nil {
		return err
	}
	o.messagesProcessed = 0
	o.commandsExecuted = 0
	o.entriesAdded = 0
	return nil
}

// Stats reports persisted message count plus this session's counters.
type Stats struct {
	StoredMessages    int
	MessagesProcessed int
	CommandsExecuted  int
	EntriesAdded      int
}

// GetStats returns usage statistics.
func (o *Orchestrator) GetStats(ctx context.Context) (Stats, error) {
	count, err := o.history.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		StoredMessages:    count,
		MessagesProcessed: o.messagesProcessed,
		CommandsExecuted:  o.commandsExecuted,
		EntriesAdded:      o.entriesAdded,
	}, nil
}

func (o *Orchestrator) runCommands(ctx context.Context, resp domain.AgentResponse, skipAddFood bool) []domain.CommandResult {
	if len(resp.Commands) == 0 {
		return nil
	}
	results := make([]domain.CommandResult, 0, len(resp.Commands))
	for _, cmd := range resp.Commands {
		if _, isAdd := cmd.(domain.AddFood); isAdd && skipAddFood {
			results = append(results, domain.CommandResult{
				Command: cmd,
				Status:  domain.CommandSkipped,
				Message: "food entries already recorded",
			})
			continue
		}
		result := o.executor.Execute(ctx, cmd, resp.FoodEntries)
		if result.Status != domain.CommandSkipped {
			o.commandsExecuted++
		}
		results = append(results, result)
	}
	return results
}
