package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/config"
)

var (
	flagConfigWrite string
	flagConfigPath  string
	flagConfigApply string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the active gems configuration",
	Long: `Prints where the gems configuration is loaded from and its contents.

Lookup order:
  1. --path, when given
  2. $XDG_CONFIG_HOME/tui-gems/gems.yaml
  3. ~/.arcade/configs/gems.yaml
  4. ./configs/gems.yaml
  5. built-in defaults

Examples:
  gems config
  gems config --difficulty easy
  gems config --write ""              # write to the XDG config directory
  gems config --write ./my-gems.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "path", "", "Load this config file instead of searching")
	configCmd.Flags().StringVar(&flagConfigApply, "difficulty", "", "Show the config with a difficulty preset applied")
	configCmd.Flags().StringVar(&flagConfigWrite, "write", "", "Write the config to this path (empty value: XDG config dir)")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadGems(flagConfigPath)
	if err != nil {
		return err
	}
	source := config.LocateGems(flagConfigPath)

	if flagConfigApply != "" {
		preset := config.ParsePreset(flagConfigApply)
		if preset == "" {
			return fmt.Errorf("unknown difficulty %q", flagConfigApply)
		}
		config.ApplyGemsPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if cmd.Flags().Changed("write") {
		path, err := config.SaveGems(cfg, flagConfigWrite)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
	return nil
}
