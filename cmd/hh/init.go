package main

import (
	"github.com/spf13/cobra"

	"hepharvest/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and create the store",
	Long: `Write the default configuration to the user config directory and
create the entry store, so later commands have something to edit and
somewhere to save.

Example:
  hh init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// InitResult is the JSON output for the init command.
type InitResult struct {
	ConfigPath string `json:"configPath"`
	StorePath  string `json:"storePath"`
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "writing config: %v", err)
	}

	st := mustOpenStore(cfg)
	if err := st.Close(); err != nil {
		exitWithError(ExitStoreError, "closing store: %v", err)
	}

	path := config.Path()
	if humanOutput {
		outputHuman("config: %s\nstore:  %s\n", path, cfg.StorePath)
		return nil
	}
	return outputJSON(InitResult{ConfigPath: path, StorePath: cfg.StorePath})
}
