// Package services содержит рассмотрение запросов на возврат администратором.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/rabbitmq"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Ошибки рассмотрения возврата. Status() задаёт HTTP-код ответа.
var (
	ErrNotPending     = &statusError{msg: "refund is not pending", code: http.StatusConflict}
	ErrRefundNotFound = &statusError{msg: "refund not found", code: http.StatusNotFound}
)

type statusError struct {
	msg  string
	code int
}

func (e *statusError) Error() string { return e.msg }
func (e *statusError) Status() int   { return e.code }

// Remote описывает методы удалённого сервиса для работы с возвратами.
type Remote interface {
	ListRefunds(ctx context.Context, token string) ([]models.Refund, error)
	ApproveRefund(ctx context.Context, token, id string) (*models.Refund, error)
	RejectRefund(ctx context.Context, token, id string) (*models.Refund, error)
}

// Publisher публикует события о решениях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// RefundService строит карточки возвратов и выполняет решения по ним.
type RefundService struct {
	remote    Remote
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewRefundService создает новый экземпляр RefundService. publisher может быть nil,
// тогда события не публикуются.
func NewRefundService(remote Remote, publisher Publisher, log *slog.Logger) *RefundService {
	return &RefundService{
		remote:    remote,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Cards возвращает карточки возвратов в порядке удалённого сервиса.
// Действия карточек выполняют решение от имени actorID.
func (s *RefundService) Cards(ctx context.Context, token, actorID string) ([]*views.RefundCard, error) {
	const op = "services.refund.Cards"

	refunds, err := s.remote.ListRefunds(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cards := make([]*views.RefundCard, 0, len(refunds))
	for _, r := range refunds {
		cards = append(cards, views.NewRefundCard(r,
			s.action(ctx, token, actorID, r, models.RefundApproved, nil),
			s.action(ctx, token, actorID, r, models.RefundRejected, nil),
		))
	}
	return cards, nil
}

// Decide находит возврат refundID и выполняет решение через действие карточки.
// Возвращает карточку с новым статусом.
func (s *RefundService) Decide(ctx context.Context, token, actorID, refundID string, decision models.RefundStatus) (*views.RefundCard, error) {
	const op = "services.refund.Decide"

	if decision != models.RefundApproved && decision != models.RefundRejected {
		return nil, fmt.Errorf("%s: unsupported decision %q", op, decision)
	}

	refunds, err := s.remote.ListRefunds(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var target *models.Refund
	for i := range refunds {
		if refunds[i].ID == refundID {
			target = &refunds[i]
			break
		}
	}
	if target == nil {
		return nil, ErrRefundNotFound
	}

	var updated *models.Refund
	card := views.NewRefundCard(*target,
		s.action(ctx, token, actorID, *target, models.RefundApproved, &updated),
		s.action(ctx, token, actorID, *target, models.RefundRejected, &updated),
	)

	if decision == models.RefundApproved {
		err = card.Approve()
	} else {
		err = card.Reject()
	}
	if errors.Is(err, views.ErrActionUnavailable) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views.NewRefundCard(*updated, nil, nil), nil
}

// action возвращает колбэк карточки, который вызывает удалённый сервис
// и публикует событие о решении. Результат записывается в out, если он передан.
func (s *RefundService) action(ctx context.Context, token, actorID string, refund models.Refund, decision models.RefundStatus, out **models.Refund) views.RefundAction {
	return func(id string) error {
		call := s.remote.ApproveRefund
		if decision == models.RefundRejected {
			call = s.remote.RejectRefund
		}

		updated, err := call(ctx, token, id)
		if err != nil {
			return err
		}
		if updated == nil || updated.ID == "" {
			r := refund
			r.Status = decision
			updated = &r
		}
		if out != nil {
			*out = updated
		}

		s.publish(ctx, models.RefundDecision{
			RefundID:  id,
			BookingID: refund.BookingID,
			Status:    decision,
			DecidedBy: actorID,
			DecidedAt: s.now().UTC(),
		})
		return nil
	}
}

func (s *RefundService) publish(ctx context.Context, event models.RefundDecision) {
	log := s.log.With(
		slog.String("refund_id", event.RefundID),
		slog.String("status", string(event.Status)),
	)
	if s.publisher == nil {
		log.Debug("publisher is not configured, event skipped")
		return
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RefundRoutingKey(event.Status), event); err != nil {
		log.Error("failed to publish refund decision", sl.Err(err))
		return
	}
	log.Info("refund decision published")
}
