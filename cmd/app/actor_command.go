package main

import (
	"errors"
	"fmt"
	"time"

	"baggage/internal/core/application/usecases/commands"
	"baggage/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newActorCommand(ctx *commandContext) *cobra.Command {
	actorCmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage actor profiles",
	}
	actorCmd.AddCommand(newActorAddCommand(ctx))
	return actorCmd
}

func newActorAddCommand(ctx *commandContext) *cobra.Command {
	var (
		id       string
		username string
		role     string
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an actor profile",
		Example: `  baggage-tracker actor add --username agent.smith --role staff
  baggage-tracker actor add --id 0b7c... --username ada --role passenger --token-ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID := kernel.NewUUID()
			if id != "" {
				parsed, err := kernel.UUIDFromString(id)
				if err != nil {
					return err
				}
				actorID = parsed
			}

			registration, err := commands.NewRegisterActorCommand(actorID, username, role)
			if err != nil {
				return err
			}

			app, err := ctx.compositionRoot()
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			created, err := app.CreateRegisterActorCommandHandler().Handle(cmd.Context(), registration)
			if err != nil {
				return err
			}

			rows := [][]string{{created.ID().String(), created.Username(), created.Role().String()}}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Username", "Role"}, rows))

			if tokenTTL > 0 {
				token, err := signDevToken(ctx, created.ID(), tokenTTL)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Profile id, usually the identity provider's subject; generated when empty")
	cmd.Flags().StringVar(&username, "username", "", "Unique username")
	cmd.Flags().StringVar(&role, "role", "", "One of passenger, staff, admin")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 0, "Also print an HS256 token valid for this long, signed with JWT_SECRET")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func signDevToken(ctx *commandContext, actorID kernel.UUID, ttl time.Duration) (string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   actorID.String(),
		Issuer:    cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}
