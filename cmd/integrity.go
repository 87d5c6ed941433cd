package cmd

import (
	"errors"

	"ingress-identity/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check snapshot storage, the settings schema and source health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		svc := rt.integrity

		logg.Info("Checking snapshot storage...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case errors.Is(err, checks.ErrStorageDisabled):
			logg.Info("Storage is disabled, skipping.")
		case err != nil && !fixFlag:
			logg.Error("Storage check failed", zap.Error(err))
		case err != nil || len(missing) > 0:
			if err != nil {
				missing = checks.RequiredFolders
			}
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fixFlag {
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				logg.Info("Storage fixed successfully.")
			} else {
				logg.Info("Run with --fix to create missing folders.")
			}
		default:
			logg.Info("Storage is intact.")
		}

		logg.Info("Checking settings schema...")
		schema, err := svc.CheckDatabase()
		switch {
		case errors.Is(err, checks.ErrDatabaseDisabled):
			logg.Info("Database is disabled, skipping.")
		case err != nil:
			logg.Error("Schema check failed", zap.Error(err))
		case schema.Matched:
			logg.Info("Settings schema matches.")
		default:
			logg.Warn("Settings schema mismatch", zap.Strings("missing", schema.MissingColumns), zap.Strings("errors", schema.Errors))
		}

		report := svc.CheckSources()
		fields := []zap.Field{
			zap.Int("manifests", report.Manifests),
			zap.Int("sources", report.Sources),
			zap.Strings("failed_manifests", report.FailedManifests),
			zap.Strings("failed_sources", report.FailedSources),
			zap.Int("errors", report.ErrorCount),
		}
		if report.Status == "ok" {
			logg.Info("Sources are healthy.", fields...)
		} else {
			logg.Warn("Source problems detected", fields...)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing bucket and folders")
}
