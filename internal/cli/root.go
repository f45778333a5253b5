// Package cli реализует flagshipctl — консольную утилиту администратора портала.
//
// Утилита ходит в удалённый сервис тем же клиентом и теми же сервисами, что и
// HTTP-портал, а также обслуживает хранилище слотов в postgres и очередь событий.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/config"
	"github.com/magabrotheeeer/flagship-portal/internal/remote"
)

const tokenEnv = "FLAGSHIP_TOKEN"

// env — общее окружение команд, заполняется перед запуском.
type env struct {
	configPath string
	token      string
	asJSON     bool
	verbose    bool

	out io.Writer
	cfg *config.Config
	log *slog.Logger
}

// client возвращает клиент удалённого сервиса. Метрики в утилите не собираются.
func (e *env) client() *remote.Client {
	return remote.New(e.cfg.Remote.BaseURL, e.cfg.Remote.Timeout, nil)
}

// requireToken возвращает bearer-токен или ошибку с подсказкой.
func (e *env) requireToken() (string, error) {
	if e.token == "" {
		return "", fmt.Errorf("remote token is required: pass --token or set %s (see `flagshipctl login`)", tokenEnv)
	}
	return e.token, nil
}

// NewRootCmd собирает дерево команд. Вывод команд пишется в out.
func NewRootCmd(out io.Writer) *cobra.Command {
	e := &env{out: out}

	root := &cobra.Command{
		Use:   "flagshipctl",
		Short: "Admin tool for the flagship portal",
		Long: `flagshipctl manages the flagship portal from the terminal.

It talks to the remote booking service with the same client as the portal,
reviews refunds, prints the dashboard, maintains the postgres state store
and tails notification events.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if e.verbose {
				level = slog.LevelDebug
			}
			e.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			e.cfg = cfg
			if e.token == "" {
				e.token = os.Getenv(tokenEnv)
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to the portal config file")
	root.PersistentFlags().StringVarP(&e.token, "token", "t", "", "bearer token of the remote booking service (env "+tokenEnv+")")
	root.PersistentFlags().BoolVar(&e.asJSON, "json", false, "print JSON instead of tables")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(e),
		newFlagshipsCmd(e),
		newRefundsCmd(e),
		newDashboardCmd(e),
		newStateCmd(e),
		newMigrateCmd(e),
		newEventsCmd(e),
	)
	return root
}

// Execute запускает утилиту с аргументами командной строки.
func Execute(ctx context.Context) error {
	return NewRootCmd(os.Stdout).ExecuteContext(ctx)
}
