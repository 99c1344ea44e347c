package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/wikibase/am"
	"github.com/teranos/wikibase/display"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage wbapi configuration",
	Long: `am: manage wbapi configuration

Configuration sources (in order of precedence):
1. Environment variables (WBAPI_* prefix, e.g. WBAPI_WIKIBASE_PASSWORD)
2. Project config (./wbapi.toml, searched upward)
3. User config (~/.wbapi/config.toml)
4. System config (/etc/wbapi/config.toml)
5. Default values

Examples:
  wbapi am show                    # Show current configuration
  wbapi am show --format json      # Show configuration in JSON format
  wbapi am get wikibase.endpoint   # Get specific config value
  wbapi am validate                # Validate current configuration
  wbapi am where                   # Show where each setting came from`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current configuration from all sources. The password is masked.",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., wikibase.endpoint, http.timeout_seconds)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return writeConfig(cmd.OutOrStdout(), cfg.Redacted(), configFormat)
}

func writeConfig(w io.Writer, cfg am.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(w, "# wbapi configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Fprintf(w, "# wbapi configuration\n%s", data)

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := am.GetViper()
	if !v.IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), redactSetting(strings.ToLower(key), am.Get(key)))
	return nil
}

const passwordKey = "wikibase.password"

// redactSetting masks the password whether it is asked for directly or sits
// inside a requested section
func redactSetting(key string, value interface{}) interface{} {
	if key == passwordKey {
		return "********"
	}
	section, ok := value.(map[string]interface{})
	if !ok || !strings.HasPrefix(passwordKey, key+".") {
		return value
	}
	masked := make(map[string]interface{}, len(section))
	for k, v := range section {
		masked[k] = redactSetting(key+"."+strings.ToLower(k), v)
	}
	return masked
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.ValidateCredentials(); err != nil {
		pterm.Warning.Printfln("%v (reads and edits will fail to log in)", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return fmt.Errorf("failed to get config introspection: %w", err)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), intro)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/wbapi/config.toml")
	fmt.Fprintln(out, "  3. [USER]     ~/.wbapi/config.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  ./wbapi.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      WBAPI_* environment variables")
	fmt.Fprintln(out)

	if len(intro.Files) == 0 {
		fmt.Fprintln(out, "No config files found.")
	} else {
		fmt.Fprintln(out, "Loaded files:")
		for _, f := range intro.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	fmt.Fprintln(out)

	data := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range intro.Settings {
		data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}
