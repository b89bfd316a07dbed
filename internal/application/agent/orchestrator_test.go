package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/macromate/macromate/internal/domain"
)

type orchestratorFixture struct {
	orch    *Orchestrator
	client  *stubCompletion
	foodLog *memFoodLog
	history *memHistory
}

func newOrchestratorFixture(response string) *orchestratorFixture {
	client := &stubCompletion{response: response}
	foodLog := &memFoodLog{}
	history := &memHistory{}
	executor := newTestExecutor(foodLog, &memProfiles{})
	food := NewFoodProcessor(foodLog, testClock(), nopLogger{})
	return &orchestratorFixture{
		orch:    NewOrchestrator(client, executor, food, history, nopLogger{}),
		client:  client,
		foodLog: foodLog,
		history: history,
	}
}

func TestProcessMessageSkipsRedundantAddFood(t *testing.T) {
	f := newOrchestratorFixture(`{
		"response_text": "Записал!",
		"food_entries": [{"name": "Яичница", "weight_g": 150, "kcal": 220, "protein": 14.0, "fat": 17.0, "carbs": 1.0, "emoji": "🍳"}],
		"commands": [{"type": "add_food"}]
	}`)

	turn, err := f.orch.ProcessMessage(context.Background(), "я съел яичницу из двух яиц")
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}

	if turn.FoodStatus.Kind != domain.FoodAdded || turn.FoodStatus.AddedCount != 1 {
		t.Errorf("food status = %+v", turn.FoodStatus)
	}
	if turn.FoodStatus.TotalKcal != 220 {
		t.Errorf("TotalKcal = %d, want 220", turn.FoodStatus.TotalKcal)
	}
	if len(f.foodLog.rows) != 1 {
		t.Fatalf("rows = %d, the entry must be inserted exactly once", len(f.foodLog.rows))
	}

	if len(turn.CommandResults) != 1 {
		t.Fatalf("command results = %d", len(turn.CommandResults))
	}
	if got := turn.CommandResults[0]; got.Status != domain.CommandSkipped {
		t.Errorf("add_food result = %+v, want skipped", got)
	}
}

func TestProcessMessageExecutesAddFoodWhenNothingWasApplied(t *testing.T) {
	// No food_entries in the payload, so add_food has nothing to
	// de-duplicate against and runs normally (then skips on empty batch).
	f := newOrchestratorFixture(`{"response_text":"ok","food_entries":[],"commands":[{"type":"add_food"}]}`)

	turn, err := f.orch.ProcessMessage(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if turn.FoodStatus.Kind != domain.FoodNone {
		t.Errorf("food status = %+v", turn.FoodStatus)
	}
	if got := turn.CommandResults[0]; got.Status != domain.CommandSkipped || got.Message != "no entries to add" {
		t.Errorf("add_food result = %+v", got)
	}
}

func TestProcessMessageRunsAddFoodAfterInsertFailure(t *testing.T) {
	f := newOrchestratorFixture(`{
		"response_text": "ok",
		"food_entries": [{"name": "Eggs", "weight_g": 150, "kcal": 220}],
		"commands": [{"type": "add_food"}]
	}`)
	f.foodLog.insertErr = errors.New("database is locked")

	turn, err := f.orch.ProcessMessage(context.Background(), "eggs")
	if err != nil {
		t.Fatal(err)
	}
	if turn.FoodStatus.Kind != domain.FoodFailed {
		t.Fatalf("food status = %+v", turn.FoodStatus)
	}
	// de-duplication only triggers on a successful apply, so the command
	// still runs (and reports the same store failure)
	if got := turn.CommandResults[0]; got.Status != domain.CommandFailed {
		t.Errorf("add_food result = %+v, want failed, not skipped", got)
	}
}

func TestProcessMessageCompletionError(t *testing.T) {
	f := newOrchestratorFixture("")
	f.client.err = errors.New("rate limited")

	_, err := f.orch.ProcessMessage(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v", err)
	}
}

func TestProcessMessageBlankResponseText(t *testing.T) {
	f := newOrchestratorFixture(`{"response_text":"  ","food_entries":[],"commands":[]}`)

	_, err := f.orch.ProcessMessage(context.Background(), "hi")
	if !errors.Is(err, ErrEmptyResponseText) {
		t.Errorf("err = %v, want ErrEmptyResponseText", err)
	}
}

func TestProcessMessageCountsSession(t *testing.T) {
	f := newOrchestratorFixture(`{
		"response_text": "ok",
		"food_entries": [{"name": "Eggs", "weight_g": 150, "kcal": 220}],
		"commands": [{"type": "add_food"}, {"type": "set_weight", "value": 80.0}]
	}`)
	ctx := context.Background()

	if _, err := f.orch.ProcessMessage(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.orch.ProcessMessage(ctx, "second"); err != nil {
		t.Fatal(err)
	}

	stats, err := f.orch.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.MessagesProcessed != 2 {
		t.Errorf("MessagesProcessed = %d, want 2", stats.MessagesProcessed)
	}
	// add_food is skipped each turn, only set_weight counts
	if stats.CommandsExecuted != 2 {
		t.Errorf("CommandsExecuted = %d, want 2", stats.CommandsExecuted)
	}
	if stats.EntriesAdded != 2 {
		t.Errorf("EntriesAdded = %d, want 2", stats.EntriesAdded)
	}
}

func TestClearChatHistoryResetsCounters(t *testing.T) {
	f := newOrchestratorFixture(`{"response_text":"ok","food_entries":[],"commands":[{"type":"clear_day"}]}`)
	ctx := context.Background()

	f.history.Append(ctx, domain.ChatTurn{Role: domain.RoleUser, Content: "hi"})
	if _, err := f.orch.ProcessMessage(ctx, "hi"); err != nil {
		t.Fatal(err)
	}

	if err := f.orch.ClearChatHistory(ctx); err != nil {
		t.Fatal(err)
	}

	stats, err := f.orch.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.StoredMessages != 0 || stats.MessagesProcessed != 0 || stats.CommandsExecuted != 0 {
		t.Errorf("stats after clear = %+v", stats)
	}
}

func TestExecuteResponseCommandsNeverDeduplicates(t *testing.T) {
	f := newOrchestratorFixture("")

	resp := domain.AgentResponse{
		ResponseText: "ok",
		FoodEntries:  []domain.FoodEntry{{Name: "Eggs", WeightGrams: 150, Kcal: 220}},
		Commands:     []domain.Command{domain.AddFood{}},
	}
	results := f.orch.ExecuteResponseCommands(context.Background(), resp)
	if len(results) != 1 || results[0].Status != domain.CommandOK {
		t.Fatalf("results = %+v, want add_food executed", results)
	}
	if len(f.foodLog.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(f.foodLog.rows))
	}
}

func TestExecuteDirectCommand(t *testing.T) {
	f := newOrchestratorFixture("")
	ctx := context.Background()

	result := f.orch.ExecuteDirectCommand(ctx, domain.ClearDay{})
	if result.Status != domain.CommandOK {
		t.Fatalf("result = %+v", result)
	}
	stats, _ := f.orch.GetStats(ctx)
	if stats.CommandsExecuted != 1 {
		t.Errorf("CommandsExecuted = %d, want 1", stats.CommandsExecuted)
	}
}

func TestSendMessageOnlySkipsHistory(t *testing.T) {
	f := newOrchestratorFixture(`{"response_text":"preview"}`)

	raw, err := f.orch.SendMessageOnly(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if raw != `{"response_text":"preview"}` {
		t.Errorf("raw = %q", raw)
	}
	if f.client.calls != 1 {
		t.Errorf("calls = %d", f.client.calls)
	}
}
