package cli

import (
	"github.com/spf13/cobra"

	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), rootOpts, func(gw storage.Gateway) error {
				if err := storage.ApplySchema(cmd.Context(), gw); err != nil {
					return err
				}
				n := len(storage.SchemaStatements())
				return emit(cmd.OutOrStdout(), rootOpts,
					map[string]any{"status": "applied", "statements": n},
					"schema applied")
			})
		},
	})

	return cmd
}
