package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	authrepo "github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	authsvc "github.com/kwekamelia/web-grp-lab/internal/auth/service"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type userOptions struct {
	username string
	password string
}

func (o *userOptions) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.username, "username", "", "login name")
	cmd.Flags().StringVar(&o.password, "password", "", "plaintext password, hashed before storing")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login users",
	}

	addOpts := &userOptions{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a login user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), rootOpts, func(gw storage.Gateway) error {
				// A new user has no sessions to touch.
				svc, err := authsvc.NewAuthService(authrepo.NewUserRepository(gw), authrepo.NewMemorySessionStore(), 0)
				if err != nil {
					return err
				}
				if err := svc.CreateUser(cmd.Context(), addOpts.username, addOpts.password); err != nil {
					return fmt.Errorf("add user %q: %w", addOpts.username, err)
				}
				return emit(cmd.OutOrStdout(), rootOpts,
					map[string]string{"status": "created", "username": addOpts.username},
					fmt.Sprintf("user %s created", addOpts.username))
			})
		},
	}
	addOpts.flags(add)

	passwdOpts := &userOptions{}
	passwd := &cobra.Command{
		Use:   "passwd",
		Short: "Set a user's password and revoke their sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(cmd.Context(), rootOpts, func(svc *authsvc.AuthService) error {
				if err := svc.SetPassword(cmd.Context(), passwdOpts.username, passwdOpts.password); err != nil {
					return fmt.Errorf("set password for %q: %w", passwdOpts.username, err)
				}
				return emit(cmd.OutOrStdout(), rootOpts,
					map[string]string{"status": "updated", "username": passwdOpts.username},
					fmt.Sprintf("password for %s updated, sessions revoked", passwdOpts.username))
			})
		},
	}
	passwdOpts.flags(passwd)

	cmd.AddCommand(add, passwd)
	return cmd
}

// withAuth builds an AuthService on the store and the live session store.
func withAuth(ctx context.Context, opts *RootOptions, fn func(svc *authsvc.AuthService) error) error {
	return withStore(ctx, opts, func(gw storage.Gateway) error {
		sessions, release, err := opts.OpenSessions(ctx)
		if err != nil {
			return err
		}
		defer release()

		svc, err := authsvc.NewAuthService(authrepo.NewUserRepository(gw), sessions, 0)
		if err != nil {
			return err
		}
		return fn(svc)
	})
}
