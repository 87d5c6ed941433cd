package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// manifestCmd groups the manifest list commands
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manage the manifest list",
	Long:  `Changes are persisted in the settings store, so they only outlive the command when the database is enabled.`,
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured manifest keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.close()

		keys, err := rt.identity.ManifestKeys(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var manifestAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Add a manifest and load it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.identity.AddManifest(ctx, args[0]); err != nil {
			return err
		}
		rt.logger.Info("Manifest added")
		return nil
	},
}

var manifestRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.identity.RemoveManifest(ctx, args[0]); err != nil {
			return err
		}
		rt.logger.Info("Manifest removed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestListCmd, manifestAddCmd, manifestRemoveCmd)
}
