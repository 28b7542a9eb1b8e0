package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/clipdex/clipdex-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change configuration",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings and their current values",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", configStore.Path())
	for _, key := range configfile.Keys() {
		value, ok := configStore.Get(key)
		if !ok {
			fmt.Fprintf(out, "%-28s (unset)\n", key)
			continue
		}
		fmt.Fprintf(out, "%-28s %v\n", key, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if !validSettingKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

func validSettingKey(key string) bool {
	for _, known := range configfile.Keys() {
		if key == known {
			return true
		}
	}
	return false
}
