package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ingress-identity/feature/identity/finder"
	"ingress-identity/feature/identity/models"

	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// playerCmd prints a merged player
var playerCmd = &cobra.Command{
	Use:   "player <oid>",
	Short: "Print the merged player for an oid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		result, err := rt.identity.GetPlayer(ctx, args[0], nil)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

// findCmd searches every loaded source
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find players matching a pattern",
	Long:  `Name and nickname accept * and ? wildcards and match case-insensitively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		var pattern finder.Pattern
		pattern.Name, _ = flags.GetString("name")
		pattern.Nickname, _ = flags.GetString("nickname")
		if f, _ := flags.GetString("faction"); f != "" {
			faction, ok := models.ParseFaction(f)
			if !ok {
				return fmt.Errorf("invalid faction: %s", f)
			}
			pattern.Faction = faction
		}
		anomalies, _ := flags.GetStringSlice("anomaly")
		for _, a := range anomalies {
			anomaly, ok := models.ParseAnomaly(strings.TrimSpace(a))
			if !ok {
				return fmt.Errorf("unknown anomaly: %s", a)
			}
			pattern.Anomaly = append(pattern.Anomaly, anomaly)
		}

		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		players, err := rt.identity.Find(ctx, pattern)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), players)
	},
}

func init() {
	RootCmd.AddCommand(playerCmd, findCmd)

	findCmd.Flags().String("name", "", "Name glob")
	findCmd.Flags().String("nickname", "", "Nickname glob")
	findCmd.Flags().String("faction", "", "Faction (enlightened, resistance)")
	findCmd.Flags().StringSlice("anomaly", nil, "Anomalies the player must have all of")
}
