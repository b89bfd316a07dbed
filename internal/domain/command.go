package domain

// Command is one agent-issued mutation. The union is closed: every variant
// lives in this file and implements isCommand, and the three dispatch sites
// (executor, Categorize, WireName) switch over the full set.
type Command interface {
	isCommand()
}

// Profile commands.

type SetWeight struct{ Kg float64 }
type SetHeight struct{ Cm int }
type SetAge struct{ Years int }
type SetGender struct{ Value Gender }
type SetActivity struct{ Value Activity }

// Goal commands.

type SetGoal struct{ Value Goal }
type SetTargetWeight struct{ Kg float64 }
type SetTempo struct{ KgPerWeek float64 }

// Food-log commands. AddFood is a marker: the entries themselves travel in
// the response envelope's food_entries list.

type AddFood struct{}
type DeleteFood struct{ Name string }
type DeleteMeal struct{ SessionID int64 }
type ClearDay struct{}
type DeleteFoodByID struct{ ID int64 }
type RepeatFood struct{ ID int64 }
type UpdateFoodWeight struct {
	ID    int64
	Grams int
}

func (SetWeight) isCommand()        {}
func (SetHeight) isCommand()        {}
func (SetAge) isCommand()           {}
func (SetGender) isCommand()        {}
func (SetActivity) isCommand()      {}
func (SetGoal) isCommand()          {}
func (SetTargetWeight) isCommand()  {}
func (SetTempo) isCommand()         {}
func (AddFood) isCommand()          {}
func (DeleteFood) isCommand()       {}
func (DeleteMeal) isCommand()       {}
func (ClearDay) isCommand()         {}
func (DeleteFoodByID) isCommand()   {}
func (RepeatFood) isCommand()       {}
func (UpdateFoodWeight) isCommand() {}

// Wire discriminators as emitted by the model.
const (
	WireSetWeight        = "set_weight"
	WireSetHeight        = "set_height"
	WireSetAge           = "set_age"
	WireSetGender        = "set_gender"
	WireSetActivity      = "set_activity"
	WireSetGoal          = "set_goal"
	WireSetTargetWeight  = "set_target_weight"
	WireSetTempo         = "set_tempo"
	WireAddFood          = "add_food"
	WireDeleteFood       = "delete_food"
	WireDeleteMeal       = "delete_meal"
	WireClearDay         = "clear_day"
	WireDeleteFoodByID   = "delete_food_by_id"
	WireRepeatFood       = "repeat_food"
	WireUpdateFoodWeight = "update_food_weight"
)

// WireName returns the wire discriminator for a command.
func WireName(c Command) string {
	switch c.(type) {
	case SetWeight:
		return WireSetWeight
	case SetHeight:
		return WireSetHeight
	case SetAge:
		return WireSetAge
	case SetGender:
		return WireSetGender
	case SetActivity:
		return WireSetActivity
	case SetGoal:
		return WireSetGoal
	case SetTargetWeight:
		return WireSetTargetWeight
	case SetTempo:
		return WireSetTempo
	case AddFood:
		return WireAddFood
	case DeleteFood:
		return WireDeleteFood
	case DeleteMeal:
		return WireDeleteMeal
	case ClearDay:
		return WireClearDay
	case DeleteFoodByID:
		return WireDeleteFoodByID
	case RepeatFood:
		return WireRepeatFood
	case UpdateFoodWeight:
		return WireUpdateFoodWeight
	}
	return ""
}

// CommandWireNames lists every known discriminator. The prompt builder and
// the completeness test consume this; keep it in sync with the union.
func CommandWireNames() []string {
	return []string{
		WireSetWeight,
		WireSetHeight,
		WireSetAge,
		WireSetGender,
		WireSetActivity,
		WireSetGoal,
		WireSetTargetWeight,
		WireSetTempo,
		WireAddFood,
		WireDeleteFood,
		WireDeleteMeal,
		WireClearDay,
		WireDeleteFoodByID,
		WireRepeatFood,
		WireUpdateFoodWeight,
	}
}

// CommandCategory partitions the union for reporting.
type CommandCategory int

const (
	CategoryProfile CommandCategory = iota
	CategoryGoal
	CategoryFood
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryProfile:
		return "profile"
	case CategoryGoal:
		return "goal"
	case CategoryFood:
		return "food"
	}
	return "unknown"
}

// Categorize places a command into exactly one category.
func Categorize(c Command) CommandCategory {
	switch c.(type) {
	case SetWeight, SetHeight, SetAge, SetGender, SetActivity:
		return CategoryProfile
	case SetGoal, SetTargetWeight, SetTempo:
		return CategoryGoal
	case AddFood, DeleteFood, DeleteMeal, ClearDay, DeleteFoodByID, RepeatFood, UpdateFoodWeight:
		return CategoryFood
	}
	return CategoryFood
}
