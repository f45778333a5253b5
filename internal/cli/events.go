package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/rabbitmq"
)

func newEventsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with notification events",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Consume refund decision events and print them until interrupted",
		Long: `Consume refund decision events from the notifications queue.

Every printed event is acknowledged and removed from the queue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.RabbitMQ.URL == "" {
				return fmt.Errorf("rabbitmq.url is not configured")
			}
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

			done, err := rabbitmq.ConsumerMessage(cmd.Context(), e.log, ch, rabbitmq.RefundQueue, e.printEvent)
			if err != nil {
				return err
			}
			<-done
			return nil
		},
	})
	return cmd
}

// printEvent печатает одно событие. Нераспознанное тело выводится как есть.
func (e *env) printEvent(_ context.Context, body []byte) error {
	if e.asJSON {
		_, err := fmt.Fprintln(e.out, string(body))
		return err
	}

	var event models.RefundDecision
	if err := json.Unmarshal(body, &event); err != nil {
		_, err = fmt.Fprintf(e.out, "? %s\n", body)
		return err
	}
	_, err := fmt.Fprintf(e.out, "%s refund %s %s by %s\n",
		event.DecidedAt.Format(time.RFC3339), event.RefundID, event.Status, event.DecidedBy)
	return err
}
