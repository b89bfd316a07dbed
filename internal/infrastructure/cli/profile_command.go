package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
	"github.com/macromate/macromate/internal/domain"
)

func newProfileCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, container)
		},
	}
	cmd.AddCommand(newProfileSetCommand(container))
	return cmd
}

func showProfile(cmd *cobra.Command, container *app.Container) error {
	out := cmd.OutOrStdout()
	profile, err := container.Profiles.Profile(cmd.Context())
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Fprintln(out, "Profile not filled in yet. Use 'macromate profile set'.")
		return nil
	}

	fmt.Fprintf(out, "Profile: %s\n", profile.Summary())
	if profile.WeightKg > 0 && profile.HeightCm > 0 && profile.Age > 0 {
		targets := domain.Targets(*profile)
		fmt.Fprintf(out, "BMR: %.0f kcal, TDEE: %.0f kcal\n", domain.BMR(*profile), domain.TDEE(*profile))
		fmt.Fprintf(out, "Daily target: %d kcal, %.0f g protein, %.0f g fat, %.0f g carbs\n",
			targets.Kcal, targets.Protein, targets.Fat, targets.Carbs)
	}
	return nil
}

func newProfileSetCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one profile field",
		Long:  "Fields: weight (kg), height (cm), age, gender, activity, goal, target (kg), tempo (kg/week).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := profileCommand(args[0], args[1])
			if err != nil {
				return err
			}
			result := container.Orchestrator.ExecuteDirectCommand(cmd.Context(), command)
			renderCommandResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	return cmd
}

func profileCommand(field, value string) (domain.Command, error) {
	switch field {
	case "weight":
		kg, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", value)
		}
		return domain.SetWeight{Kg: kg}, nil
	case "height":
		cm, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid height %q", value)
		}
		return domain.SetHeight{Cm: cm}, nil
	case "age":
		years, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", value)
		}
		return domain.SetAge{Years: years}, nil
	case "gender":
		g, err := domain.ParseGender(value)
		if err != nil {
			return nil, err
		}
		return domain.SetGender{Value: g}, nil
	case "activity":
		a, err := domain.ParseActivity(value)
		if err != nil {
			return nil, err
		}
		return domain.SetActivity{Value: a}, nil
	case "goal":
		g, err := domain.ParseGoal(value)
		if err != nil {
			return nil, err
		}
		return domain.SetGoal{Value: g}, nil
	case "target":
		kg, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid target weight %q", value)
		}
		return domain.SetTargetWeight{Kg: kg}, nil
	case "tempo":
		kg, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tempo %q", value)
		}
		return domain.SetTempo{KgPerWeek: kg}, nil
	}
	return nil, fmt.Errorf("unknown profile field %q", field)
}
