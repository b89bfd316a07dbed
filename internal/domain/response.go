package domain

// AgentResponse is the structured envelope decoded from the model's reply.
type AgentResponse struct {
	ResponseText string
	FoodEntries  []FoodEntry
	Commands     []Command
}

// CommandStatus discriminates the outcome of one executed command.
type CommandStatus int

const (
	CommandOK CommandStatus = iota
	CommandSkipped
	CommandFailed
)

func (s CommandStatus) String() string {
	switch s {
	case CommandOK:
		return "ok"
	case CommandSkipped:
		return "skipped"
	case CommandFailed:
		return "error"
	}
	return "unknown"
}

// CommandResult is the one-to-one outcome for an input command. The executor
// never drops a command without producing one of these.
type CommandResult struct {
	Command Command
	Status  CommandStatus
	Message string
}

// FoodStatusKind discriminates the food-batch outcome of a turn.
type FoodStatusKind int

const (
	FoodNone FoodStatusKind = iota
	FoodAdded
	FoodAllInvalid
	FoodFailed
)

// FoodProcessingStatus describes what happened to the response's food entries.
type FoodProcessingStatus struct {
	Kind         FoodStatusKind
	AddedCount   int
	InvalidCount int
	TotalKcal    int
	Entries      []FoodEntry
	Message      string
}

// TurnResult aggregates one successful ProcessMessage call. Failed turns are
// reported through the error return instead.
type TurnResult struct {
	Response       AgentResponse
	FoodStatus     FoodProcessingStatus
	CommandResults []CommandResult
}
