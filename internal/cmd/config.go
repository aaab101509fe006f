package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"menukeeper/internal/config"
	"menukeeper/internal/config/yamlstore"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage menukeeper configuration settings.

Configuration is stored as flat key-value pairs in .menukeeper/config.yaml.
Known keys are validated on set; other keys are stored as given.

Subcommands:
  get       Get a configuration value
  set       Set a configuration value
  list      List all configuration values
  unset     Remove a configuration value
  validate  Validate configuration`,
	}

	cmd.AddCommand(newConfigGetCmd(provider))
	cmd.AddCommand(newConfigSetCmd(provider))
	cmd.AddCommand(newConfigListCmd(provider))
	cmd.AddCommand(newConfigUnsetCmd(provider))
	cmd.AddCommand(newConfigValidateCmd(provider))

	return cmd
}

// configSession is what config subcommands work with. It deliberately
// skips opening the catalog so a broken backend setting can still be fixed.
type configSession struct {
	store config.Store
	out   io.Writer
	json  bool
}

func openConfig(provider *AppProvider) (*configSession, error) {
	out := provider.Out
	if out == nil {
		out = os.Stdout
	}
	if app := provider.app; app != nil && app.ConfigStore != nil {
		return &configSession{store: app.ConfigStore, out: app.Out, json: app.JSON || provider.JSONOutput}, nil
	}

	dir, err := config.FindDir(provider.DataPath)
	if err != nil {
		return nil, err
	}
	store, err := yamlstore.New(config.PathsFor(dir).ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &configSession{store: store, out: out, json: provider.JSONOutput}, nil
}

// newConfigGetCmd creates the "config get" subcommand.
func newConfigGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the value of a configuration key.

Prints the bare value if the key is set, or "key (not set)" if missing.

Examples:
  mk config get catalog.flavor
  mk config get id.prefix`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openConfig(provider)
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := s.store.Get(key)

			if s.json {
				return writeJSON(s.out, map[string]any{"key": key, "value": value, "set": ok})
			}
			if ok {
				fmt.Fprintln(s.out, value)
			} else {
				fmt.Fprintf(s.out, "%s (not set)\n", key)
			}
			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the "config set" subcommand.
func newConfigSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration key to a value.

Examples:
  mk config set catalog.flavor inventory
  mk config set storage.backend mongodb
  mk config set mongodb.uri mongodb://localhost:27017`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openConfig(provider)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if key == config.KeyIDPrefix {
				value = normalizePrefix(value)
			}
			if err := config.ValidateValue(key, value); err != nil {
				return err
			}
			if err := s.store.Set(key, value); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}

			if s.json {
				return writeJSON(s.out, map[string]string{"key": key, "value": value})
			}
			fmt.Fprintf(s.out, "Set %s = %s%s\n", key, value, unknownKeyHint(key))
			return nil
		},
	}

	return cmd
}

// newConfigListCmd creates the "config list" subcommand.
func newConfigListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration key-value pairs, defaults included.

Entries are sorted alphabetically by key.

Examples:
  mk config list
  mk config list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openConfig(provider)
			if err != nil {
				return err
			}

			all := s.store.All()
			for k, v := range config.DefaultValues() {
				if _, exists := all[k]; !exists {
					all[k] = v
				}
			}

			if s.json {
				return writeJSON(s.out, all)
			}

			fmt.Fprintln(s.out, "Configuration:")
			for _, k := range sortedKeys(all) {
				fmt.Fprintf(s.out, "  %s = %s\n", k, all[k])
			}
			return nil
		},
	}

	return cmd
}

// newConfigUnsetCmd creates the "config unset" subcommand.
func newConfigUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Long: `Remove a configuration key. Core keys fall back to their defaults.

Examples:
  mk config unset catalog.key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openConfig(provider)
			if err != nil {
				return err
			}

			key := args[0]
			if err := s.store.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if s.json {
				return writeJSON(s.out, map[string]string{"key": key})
			}
			fmt.Fprintf(s.out, "Unset %s\n", key)
			return nil
		},
	}

	return cmd
}

// newConfigValidateCmd creates the "config validate" subcommand.
func newConfigValidateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validate the current configuration.

Checks that known keys have valid values. Unknown keys are always accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openConfig(provider)
			if err != nil {
				return err
			}

			verr := config.Validate(s.store)
			if s.json {
				result := map[string]any{"valid": verr == nil}
				if verr != nil {
					result["error"] = verr.Error()
				}
				if err := writeJSON(s.out, result); err != nil {
					return err
				}
				return verr
			}

			if verr != nil {
				return verr
			}
			fmt.Fprintln(s.out, "Configuration is valid.")
			return nil
		},
	}

	return cmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unknownKeyHint is appended to set output for keys outside the known set.
func unknownKeyHint(key string) string {
	if config.IsKnownKey(key) {
		return ""
	}
	return fmt.Sprintf(" (custom key; known keys: %s)", strings.Join(config.KnownKeys(), ", "))
}
