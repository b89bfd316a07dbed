package ai

import (
	"fmt"
	"strings"

	"github.com/macromate/macromate/internal/domain"
)

// commandVocabulary documents every command the model may emit. Each wire
// name from the domain union must appear here; a test cross-checks this
// against domain.CommandWireNames.
var commandVocabulary = []struct {
	name string
	args string
	desc string
}{
	{domain.WireSetWeight, `{"value": <float, kg>}`, "set the user's current weight"},
	{domain.WireSetHeight, `{"value": <int, cm>}`, "set the user's height"},
	{domain.WireSetAge, `{"value": <int, years>}`, "set the user's age"},
	{domain.WireSetGender, `{"value": "male"|"female"}`, "set the user's gender"},
	{domain.WireSetActivity, `{"value": "sedentary"|"light"|"moderate"|"active"|"very_active"}`, "set the activity level"},
	{domain.WireSetGoal, `{"value": "lose"|"gain"|"maintain"}`, "set the weight goal"},
	{domain.WireSetTargetWeight, `{"value": <float, kg>}`, "set the target weight"},
	{domain.WireSetTempo, `{"value": <float, kg per week>}`, "set the weekly tempo"},
	{domain.WireAddFood, `{}`, "record the items listed in food_entries (no extra fields)"},
	{domain.WireDeleteFood, `{"name": <string>}`, "delete today's entries with this name"},
	{domain.WireDeleteMeal, `{"session_id": <int64>}`, "delete one meal session from today"},
	{domain.WireClearDay, `{}`, "delete all of today's entries"},
	{domain.WireDeleteFoodByID, `{"id": <int64>}`, "delete one entry by its id"},
	{domain.WireRepeatFood, `{"id": <int64>}`, "log the same food again"},
	{domain.WireUpdateFoodWeight, `{"id": <int64>, "new_weight_g": <int>}`, "change an entry's weight; macros rescale proportionally"},
}

// systemPrompt builds the instruction block: assistant role, current profile,
// the required response shape and the full command vocabulary.
func systemPrompt(profile *domain.Profile) string {
	summary := "not filled in yet"
	if profile != nil {
		summary = profile.Summary()
	}

	var b strings.Builder
	b.WriteString("You are MacroMate, a calorie and macro tracking assistant. ")
	b.WriteString("The user tells you what they ate or asks you to adjust their profile; ")
	b.WriteString("you answer in the user's language.\n\n")

	fmt.Fprintf(&b, "Current user profile: %s.\n\n", summary)

	b.WriteString("Always respond with a single JSON object of this exact shape:\n")
	b.WriteString(`{
  "response_text": "<your reply to the user, required, never empty>",
  "food_entries": [
    {"name": "<string>", "weight_g": <int>, "kcal": <int>, "protein": <float>, "fat": <float>, "carbs": <float>, "emoji": "<one emoji, optional>"}
  ],
  "commands": [
    {"type": "<command name>", ...command fields}
  ]
}
`)
	b.WriteString("\nEstimate weight_g, kcal and macros yourself when the user does not give them. ")
	b.WriteString("Leave food_entries and commands empty when nothing applies.\n")
	b.WriteString("\nAvailable commands:\n")
	for _, c := range commandVocabulary {
		fmt.Fprintf(&b, "- %s %s — %s\n", c.name, c.args, c.desc)
	}
	return b.String()
}
