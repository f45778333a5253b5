package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
)

// ConsumerMessage читает очередь queueName и передаёт тела сообщений в handler.
// Сообщение подтверждается после успешной обработки и возвращается в очередь при ошибке.
// Чтение прекращается при отмене ctx или закрытии канала; возвращённый канал
// закрывается, когда чтение завершено.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func(context.Context, []byte) error) (<-chan struct{}, error) {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				handleDelivery(ctx, log, d, handler)
			case <-ctx.Done():
				return
			}
		}
	}()
	return done, nil
}

func handleDelivery(ctx context.Context, log *slog.Logger, d amqp.Delivery, handler func(context.Context, []byte) error) {
	if err := handler(ctx, d.Body); err != nil {
		log.Warn("failed to handle message", slog.String("routing_key", d.RoutingKey), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
