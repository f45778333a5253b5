// Package services собирает сводку панели администратора из нескольких
// запросов к удалённому сервису, выполняемых параллельно.
package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Remote описывает методы удалённого сервиса, из которых строится сводка.
type Remote interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	ListFlagships(ctx context.Context, token string) ([]models.Flagship, error)
	ListRefunds(ctx context.Context, token string) ([]models.Refund, error)
	ListPayments(ctx context.Context, token string) ([]models.Payment, error)
}

// Summary — сводка панели администратора. Раздел, который не удалось
// загрузить, остаётся нулевым и попадает в Failed.
type Summary struct {
	Users          int                 `json:"users"`
	PendingVerify  int                 `json:"pendingVerification"`
	Flagships      int                 `json:"flagships"`
	Payments       int                 `json:"payments"`
	Revenue        int                 `json:"revenue"`
	PendingRefunds []*views.RefundCard `json:"pendingRefunds"`
	Failed         []string            `json:"failed"`
}

// DashboardService строит сводку.
type DashboardService struct {
	remote Remote
	log    *slog.Logger
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(remote Remote, log *slog.Logger) *DashboardService {
	return &DashboardService{remote: remote, log: log}
}

// Summary запрашивает все разделы параллельно. Ошибка одного раздела
// записывается в лог и не прерывает остальные.
func (s *DashboardService) Summary(ctx context.Context, token string) Summary {
	const op = "services.dashboard.Summary"
	log := s.log.With(slog.String("op", op))

	var (
		users     []models.User
		flagships []models.Flagship
		refunds   []models.Refund
		payments  []models.Payment
		failed    = make([]error, 4)
	)

	// Разделы не возвращают ошибок в группу: сбой одного не отменяет остальные,
	// ошибки собираются в failed.
	var g errgroup.Group
	g.Go(func() error {
		users, failed[0] = s.remote.ListUsers(ctx, token)
		return nil
	})
	g.Go(func() error {
		flagships, failed[1] = s.remote.ListFlagships(ctx, token)
		return nil
	})
	g.Go(func() error {
		refunds, failed[2] = s.remote.ListRefunds(ctx, token)
		return nil
	})
	g.Go(func() error {
		payments, failed[3] = s.remote.ListPayments(ctx, token)
		return nil
	})
	_ = g.Wait()

	sum := Summary{
		PendingRefunds: []*views.RefundCard{},
		Failed:         []string{},
	}
	for i, section := range []string{"users", "flagships", "refunds", "payments"} {
		if failed[i] != nil {
			log.Error("failed to load dashboard section", slog.String("section", section), sl.Err(failed[i]))
			sum.Failed = append(sum.Failed, section)
		}
	}

	if failed[0] == nil {
		sum.Users = len(users)
		for _, u := range users {
			if u.Verification == models.VerificationPending {
				sum.PendingVerify++
			}
		}
	}
	if failed[1] == nil {
		sum.Flagships = len(flagships)
	}
	if failed[2] == nil {
		for _, r := range refunds {
			if r.Status == models.RefundPending {
				sum.PendingRefunds = append(sum.PendingRefunds, views.NewRefundCard(r, nil, nil))
			}
		}
	}
	if failed[3] == nil {
		sum.Payments = len(payments)
		for _, p := range payments {
			sum.Revenue += p.Amount - p.Discount
		}
	}
	return sum
}
