// Package cli implements the bugadm administration commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	authrepo "github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

// Opener returns a ready store for a command. The caller closes it.
type Opener func(ctx context.Context) (storage.Gateway, error)

// SessionOpener returns the session store the API serves from, plus a
// function releasing it.
type SessionOpener func(ctx context.Context) (authrepo.SessionStore, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format       string // "json" | "text"
	Open         Opener
	OpenSessions SessionOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for bugadm.
func NewRootCommand(open Opener, sessions SessionOpener) *cobra.Command {
	opts := &RootOptions{Open: open, OpenSessions: sessions}

	cmd := &cobra.Command{
		Use:           "bugadm",
		Short:         "Administer the bug tracker store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewProjectsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// withStore opens the store, runs fn and closes the store.
func withStore(ctx context.Context, opts *RootOptions, fn func(gw storage.Gateway) error) error {
	gw, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	defer gw.Close()
	return fn(gw)
}

// emit writes v as JSON, or text as a single line.
func emit(w io.Writer, opts *RootOptions, v any, text string) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
