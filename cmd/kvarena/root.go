package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flier/kvarena/pkg/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kvarena",
	Short: "Inspect and exercise an embedded arena key-value store",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML arena-sizing document (size, hunk_size, max_key_length); defaults to a 1 MiB arena")
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// loadConfig reads --config if set, otherwise returns [config.Default].
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default, nil
	}
	return config.LoadFile(configPath)
}
