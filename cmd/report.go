package cmd

import (
	"github.com/spf13/cobra"
)

// reportCmd groups the read-only reports
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print information about the loaded manifests",
}

// infoCmd prints the per-manifest source summary
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print manifest and source information",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		info, err := rt.identity.Information(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	},
}

// errorsCmd prints every error collected while loading
var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Print load errors grouped by manifest and source",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		errs, err := rt.identity.Errors(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), errs)
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(infoCmd, errorsCmd)
}
