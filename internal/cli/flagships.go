package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	flagshipservice "github.com/magabrotheeeer/flagship-portal/internal/services/flagship"
)

func newFlagshipsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flagships",
		Short: "Browse flagship trips",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List flagships in remote order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := e.requireToken()
			if err != nil {
				return err
			}
			cards, err := flagshipservice.NewFlagshipService(e.client(), e.log).Cards(cmd.Context(), token)
			if err != nil {
				return err
			}
			if e.asJSON {
				return e.printJSON(cards)
			}

			rows := make([][]string, 0, len(cards))
			for _, c := range cards {
				rows = append(rows, []string{
					c.ID,
					c.Name,
					c.Destination,
					c.DateLabel,
					strconv.Itoa(c.Price),
					strconv.Itoa(c.TotalSeats),
				})
			}
			return e.printTable([]string{"ID", "NAME", "DESTINATION", "DATES", "PRICE", "SEATS"}, rows)
		},
	})
	return cmd
}
