package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macromate/macromate/internal/app"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, credential and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := container.DoctorService.Run(cmd.Context())
			failed := 0
			for _, check := range checks {
				mark := "ok"
				if !check.OK {
					mark = "FAIL"
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", mark, check.Name, check.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
