package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
	authservice "github.com/magabrotheeeer/flagship-portal/internal/services/auth"
)

func newLoginCmd(e *env) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the remote bearer token",
		Long: `Sign in to the remote booking service with email and password.

The printed token can be exported as ` + tokenEnv + ` for other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := authservice.NewAuthService(e.client(), e.log)
			tok, err := svc.Authenticate(cmd.Context(), creds)
			if err != nil {
				if errors.Is(err, authservice.ErrInvalidCredentials) {
					return err
				}
				return fmt.Errorf("login: %w", err)
			}
			if e.asJSON {
				return e.printJSON(map[string]any{
					"token": tok.BearerToken,
					"user":  tok.User,
				})
			}
			fmt.Fprintln(e.out, tok.BearerToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
