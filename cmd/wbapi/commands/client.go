package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/wikibase/am"
	"github.com/teranos/wikibase/display"
	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/wikibase"
)

// ConfigFile, when set, replaces the config cascade with a single file
var ConfigFile string

func loadConfig() (*am.Config, error) {
	if ConfigFile != "" {
		return am.LoadFromFile(ConfigFile)
	}
	return am.Load()
}

// LogSettings combines the -v and --log-json flags with the [log] config
// section. Flags can raise verbosity or enable JSON but not lower either.
// An unreadable config leaves the flags in charge; the command itself reports it.
func LogSettings(cmd *cobra.Command) (jsonOutput bool, verbosity int) {
	verbosity, _ = cmd.Flags().GetCount("verbose")
	jsonOutput, _ = cmd.Flags().GetBool("log-json")

	cfg, err := loadConfig()
	if err != nil {
		return jsonOutput, verbosity
	}
	if cfg.Log.Verbosity > verbosity {
		verbosity = cfg.Log.Verbosity
	}
	return jsonOutput || cfg.Log.JSON, verbosity
}

// connect loads configuration and logs in
func connect(cmd *cobra.Command) (*wikibase.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if v, _ := cmd.Flags().GetCount("verbose"); v > cfg.Log.Verbosity {
		cfg.Log.Verbosity = v
	}
	return wikibase.NewFromConfig(cmd.Context(), cfg)
}

// addOptionFlag registers the repeatable --opt key=value flag
func addOptionFlag(cmd *cobra.Command) {
	cmd.Flags().StringArray("opt", nil, "Extra API parameter as key=value (repeatable)")
}

func optionsFromFlags(cmd *cobra.Command) (wikibase.Options, error) {
	pairs, _ := cmd.Flags().GetStringArray("opt")
	return parseOptions(pairs)
}

func parseOptions(pairs []string) (wikibase.Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	opts := make(wikibase.Options, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, errors.Newf("invalid --opt %q: expected key=value", p)
		}
		opts[key] = value
	}
	return opts, nil
}

// splitIDs accepts ids as separate args, "|"-joined, or comma separated
func splitIDs(args []string) wikibase.IDs {
	var ids wikibase.IDs
	for _, a := range args {
		for _, id := range strings.FieldsFunc(a, func(r rune) bool { return r == '|' || r == ',' }) {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// printResponse writes the raw reply as JSON. A server error is returned so
// the process exits non-zero.
func printResponse(cmd *cobra.Command, resp *wikibase.Response) error {
	if err := display.OutputJSON(cmd.OutOrStdout(), resp.Raw); err != nil {
		return err
	}
	return resp.Err()
}
