package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/rabbitmq"
	refundservice "github.com/magabrotheeeer/flagship-portal/internal/services/refund"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

const cliActor = "flagshipctl"

func newRefundsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refunds",
		Short: "Review refund requests",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List refund requests with their badges and available actions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				token, err := e.requireToken()
				if err != nil {
					return err
				}
				cards, err := refundservice.NewRefundService(e.client(), nil, e.log).Cards(cmd.Context(), token, cliActor)
				if err != nil {
					return err
				}
				return e.printRefunds(cards)
			},
		},
		newDecideCmd(e, "approve", models.RefundApproved),
		newDecideCmd(e, "reject", models.RefundRejected),
	)
	return cmd
}

func newDecideCmd(e *env, use string, decision models.RefundStatus) *cobra.Command {
	var notify bool

	cmd := &cobra.Command{
		Use:   use + " <refund-id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a pending refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := e.requireToken()
			if err != nil {
				return err
			}

			var publisher refundservice.Publisher
			if notify && e.cfg.RabbitMQ.URL != "" {
				conn, err := rabbitmq.Connect(e.cfg.RabbitMQ.URL, e.cfg.RabbitMQ.Retries, e.cfg.RabbitMQ.Delay)
				if err != nil {
					return err
				}
				defer conn.Close()
				ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
				if err != nil {
					return err
				}
				defer ch.Close()
				publisher = rabbitmq.NewPublisher(ch)
			}

			card, err := refundservice.NewRefundService(e.client(), publisher, e.log).
				Decide(cmd.Context(), token, cliActor, args[0], decision)
			if err != nil {
				return err
			}
			if e.asJSON {
				return e.printJSON(card)
			}
			fmt.Fprintf(e.out, "refund %s %s\n", card.ID, card.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", true, "publish the decision to the notifications exchange when rabbitmq is configured")
	return cmd
}

func (e *env) printRefunds(cards []*views.RefundCard) error {
	if e.asJSON {
		return e.printJSON(cards)
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.ID,
			c.BookingID,
			c.CustomerName,
			strconv.Itoa(c.Amount),
			string(c.Status),
			string(c.Badge),
			c.RequestedAt.Format(time.DateOnly),
			strings.Join(c.Actions, ","),
		})
	}
	return e.printTable([]string{"ID", "BOOKING", "CUSTOMER", "AMOUNT", "STATUS", "BADGE", "REQUESTED", "ACTIONS"}, rows)
}
