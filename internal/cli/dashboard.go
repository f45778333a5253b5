package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dashboardservice "github.com/magabrotheeeer/flagship-portal/internal/services/dashboard"
)

func newDashboardCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the admin dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := e.requireToken()
			if err != nil {
				return err
			}
			sum := dashboardservice.NewDashboardService(e.client(), e.log).Summary(cmd.Context(), token)
			if e.asJSON {
				return e.printJSON(sum)
			}

			err = e.printTable([]string{"SECTION", "VALUE"}, [][]string{
				{"users", fmt.Sprint(sum.Users)},
				{"pending verification", fmt.Sprint(sum.PendingVerify)},
				{"flagships", fmt.Sprint(sum.Flagships)},
				{"payments", fmt.Sprint(sum.Payments)},
				{"revenue", fmt.Sprint(sum.Revenue)},
				{"pending refunds", fmt.Sprint(len(sum.PendingRefunds))},
			})
			if err != nil {
				return err
			}
			if len(sum.Failed) > 0 {
				fmt.Fprintf(e.out, "\nunavailable: %s\n", strings.Join(sum.Failed, ", "))
			}
			return nil
		},
	}
}
