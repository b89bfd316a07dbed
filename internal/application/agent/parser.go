package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/macromate/macromate/internal/domain"
)

// ErrEmptyResponseText marks a syntactically valid reply whose response_text
// is blank. Showing such a reply would render nothing to the user.
var ErrEmptyResponseText = errors.New("ai response contains no text")

// ParseResponse decodes the raw model payload into an AgentResponse. The
// strict path unmarshals the full envelope; when it fails, a lenient
// tree-walk extracts whatever fields are usable.
func ParseResponse(raw string) (domain.AgentResponse, error) {
	resp, err := parseStrict(raw)
	if err != nil {
		resp = parseFallback(raw)
	}
	if strings.TrimSpace(resp.ResponseText) == "" {
		return domain.AgentResponse{}, ErrEmptyResponseText
	}
	return resp, nil
}

// EncodeResponse renders an AgentResponse back into its wire form.
func EncodeResponse(resp domain.AgentResponse) (string, error) {
	out := wireResponse{
		ResponseText: resp.ResponseText,
		FoodEntries:  make([]wireFood, 0, len(resp.FoodEntries)),
		Commands:     make([]json.RawMessage, 0, len(resp.Commands)),
	}
	for _, e := range resp.FoodEntries {
		out.FoodEntries = append(out.FoodEntries, wireFood{
			Name:    e.Name,
			WeightG: flexInt(e.WeightGrams),
			Kcal:    flexInt(e.Kcal),
			Protein: flexFloat(e.Protein),
			Fat:     flexFloat(e.Fat),
			Carbs:   flexFloat(e.Carbs),
			Emoji:   e.Emoji,
		})
	}
	for _, c := range resp.Commands {
		raw, err := encodeCommand(c)
		if err != nil {
			return "", err
		}
		out.Commands = append(out.Commands, raw)
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

type wireResponse struct {
	ResponseText string            `json:"response_text"`
	FoodEntries  []wireFood        `json:"food_entries"`
	Commands     []json.RawMessage `json:"commands"`
}

type wireFood struct {
	Name    string    `json:"name"`
	WeightG flexInt   `json:"weight_g"`
	Kcal    flexInt   `json:"kcal"`
	Protein flexFloat `json:"protein"`
	Fat     flexFloat `json:"fat"`
	Carbs   flexFloat `json:"carbs"`
	Emoji   string    `json:"emoji,omitempty"`
}

func (w wireFood) toEntry() domain.FoodEntry {
	emoji := w.Emoji
	if emoji == "" {
		emoji = domain.DefaultEmoji
	}
	return domain.FoodEntry{
		Name:        strings.TrimSpace(w.Name),
		WeightGrams: int(w.WeightG),
		Kcal:        int(w.Kcal),
		Protein:     float64(w.Protein),
		Fat:         float64(w.Fat),
		Carbs:       float64(w.Carbs),
		Emoji:       emoji,
	}
}

// flexInt tolerates models that quote numbers.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// flexFloat tolerates models that quote numbers.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func parseStrict(raw string) (domain.AgentResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return domain.AgentResponse{}, err
	}

	resp := domain.AgentResponse{ResponseText: wire.ResponseText}
	for _, w := range wire.FoodEntries {
		resp.FoodEntries = append(resp.FoodEntries, w.toEntry())
	}
	for _, rawCmd := range wire.Commands {
		cmd, err := decodeCommand(rawCmd)
		if err != nil {
			return domain.AgentResponse{}, err
		}
		if cmd != nil {
			resp.Commands = append(resp.Commands, cmd)
		}
	}
	return resp, nil
}

// wireCommand is a superset of every variant's fields; the type discriminator
// selects which ones matter.
type wireCommand struct {
	Type       string   `json:"type"`
	Value      valueAny `json:"value"`
	Name       string   `json:"name"`
	SessionID  flexInt  `json:"session_id"`
	ID         flexInt  `json:"id"`
	NewWeightG flexInt  `json:"new_weight_g"`
}

// valueAny holds a command's "value" field, which may be a number or a string
// depending on the variant.
type valueAny struct {
	raw json.RawMessage
}

func (v *valueAny) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v valueAny) asFloat() float64 {
	s := strings.Trim(string(v.raw), `"`)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func (v valueAny) asString() string {
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(v.raw), `"`)
}

// decodeCommand maps a wire object onto a Command variant. Unknown type
// strings yield (nil, nil) and are dropped: the model occasionally invents
// commands and that must not poison the whole response.
func decodeCommand(raw json.RawMessage) (domain.Command, error) {
	var w wireCommand
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return commandFromWire(w), nil
}

// commandFromWire is the single string-to-variant table shared by the strict
// and fallback paths.
func commandFromWire(w wireCommand) domain.Command {
	switch w.Type {
	case domain.WireSetWeight:
		return domain.SetWeight{Kg: w.Value.asFloat()}
	case domain.WireSetHeight:
		return domain.SetHeight{Cm: int(w.Value.asFloat())}
	case domain.WireSetAge:
		return domain.SetAge{Years: int(w.Value.asFloat())}
	case domain.WireSetGender:
		g, err := domain.ParseGender(w.Value.asString())
		if err != nil {
			return nil
		}
		return domain.SetGender{Value: g}
	case domain.WireSetActivity:
		a, err := domain.ParseActivity(w.Value.asString())
		if err != nil {
			return nil
		}
		return domain.SetActivity{Value: a}
	case domain.WireSetGoal:
		g, err := domain.ParseGoal(w.Value.asString())
		if err != nil {
			return nil
		}
		return domain.SetGoal{Value: g}
	case domain.WireSetTargetWeight:
		return domain.SetTargetWeight{Kg: w.Value.asFloat()}
	case domain.WireSetTempo:
		return domain.SetTempo{KgPerWeek: w.Value.asFloat()}
	case domain.WireAddFood:
		return domain.AddFood{}
	case domain.WireDeleteFood:
		return domain.DeleteFood{Name: w.Name}
	case domain.WireDeleteMeal:
		return domain.DeleteMeal{SessionID: int64(w.SessionID)}
	case domain.WireClearDay:
		return domain.ClearDay{}
	case domain.WireDeleteFoodByID:
		return domain.DeleteFoodByID{ID: int64(w.ID)}
	case domain.WireRepeatFood:
		return domain.RepeatFood{ID: int64(w.ID)}
	case domain.WireUpdateFoodWeight:
		return domain.UpdateFoodWeight{ID: int64(w.ID), Grams: int(w.NewWeightG)}
	}
	return nil
}

// encodeCommand renders a Command back into its wire object.
func encodeCommand(c domain.Command) (json.RawMessage, error) {
	fields := map[string]any{"type": domain.WireName(c)}
	switch cmd := c.(type) {
	case domain.SetWeight:
		fields["value"] = cmd.Kg
	case domain.SetHeight:
		fields["value"] = cmd.Cm
	case domain.SetAge:
		fields["value"] = cmd.Years
	case domain.SetGender:
		fields["value"] = string(cmd.Value)
	case domain.SetActivity:
		fields["value"] = string(cmd.Value)
	case domain.SetGoal:
		fields["value"] = string(cmd.Value)
	case domain.SetTargetWeight:
		fields["value"] = cmd.Kg
	case domain.SetTempo:
		fields["value"] = cmd.KgPerWeek
	case domain.AddFood:
	case domain.DeleteFood:
		fields["name"] = cmd.Name
	case domain.DeleteMeal:
		fields["session_id"] = cmd.SessionID
	case domain.ClearDay:
	case domain.DeleteFoodByID:
		fields["id"] = cmd.ID
	case domain.RepeatFood:
		fields["id"] = cmd.ID
	case domain.UpdateFoodWeight:
		fields["id"] = cmd.ID
		fields["new_weight_g"] = cmd.Grams
	default:
		return nil, fmt.Errorf("unknown command %T", c)
	}
	return json.Marshal(fields)
}

// parseFallback walks a generic JSON tree field by field, defaulting
// everything it cannot read. It never fails; a blank response_text is caught
// by the caller.
func parseFallback(raw string) domain.AgentResponse {
	var tree map[string]any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return domain.AgentResponse{}
	}

	resp := domain.AgentResponse{}
	if text, ok := tree["response_text"].(string); ok {
		resp.ResponseText = text
	}

	if items, ok := tree["food_entries"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			emoji := stringField(obj, "emoji")
			if emoji == "" {
				emoji = domain.DefaultEmoji
			}
			resp.FoodEntries = append(resp.FoodEntries, domain.FoodEntry{
				Name:        strings.TrimSpace(stringField(obj, "name")),
				WeightGrams: int(floatField(obj, "weight_g")),
				Kcal:        int(floatField(obj, "kcal")),
				Protein:     floatField(obj, "protein"),
				Fat:         floatField(obj, "fat"),
				Carbs:       floatField(obj, "carbs"),
				Emoji:       emoji,
			})
		}
	}

	if items, ok := tree["commands"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			raw, err := json.Marshal(obj)
			if err != nil {
				continue
			}
			cmd, err := decodeCommand(raw)
			if err != nil || cmd == nil {
				continue
			}
			resp.Commands = append(resp.Commands, cmd)
		}
	}
	return resp
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func floatField(obj map[string]any, key string) float64 {
	switch v := obj[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}
