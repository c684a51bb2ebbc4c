package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "ssto/internal/jwt_token"
)

func newTokenCommand() *cobra.Command {
	var (
		operator string
		name     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if operator == "" {
				return errors.New("--operator is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc := jwttoken.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
			token, err := svc.IssueOperatorToken(operator, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "Operator id recorded on manual links")
	cmd.Flags().StringVar(&name, "name", "", "Operator display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")

	return cmd
}
