package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flier/kvarena/pkg/arena"
)

var (
	seedFile  string
	dumpKV    bool
	rawKeys   bool
	rawValues bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load key/value pairs into a fresh arena and report its statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&seedFile, "seed", "",
		`path to a file of "key value" lines to load before reporting; defaults to stdin`)
	statsCmd.Flags().BoolVar(&dumpKV, "dump", false, "also print every live entry")
	statsCmd.Flags().BoolVar(&rawKeys, "raw-keys", false, "print dump keys verbatim instead of quoted")
	statsCmd.Flags().BoolVar(&rawValues, "raw-values", false, "print dump values verbatim instead of hex-encoded")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := cfg.NewArena()
	if err != nil {
		return err
	}

	if err := seed(a, cmd); err != nil {
		return err
	}

	if err := a.PrintStats(cmd.OutOrStdout()); err != nil {
		return err
	}

	if dumpKV {
		return a.StatsPrint(cmd.OutOrStdout(), arena.DumpFormat{RawKey: rawKeys, RawValue: rawValues})
	}
	return nil
}

// seed loads "key value..." lines from --seed, or stdin if unset, creating
// each into a.
func seed(a *arena.Arena, cmd *cobra.Command) error {
	var r io.Reader = cmd.InOrStdin()
	if seedFile != "" {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := []byte(fields[0])
		value := []byte(strings.Join(fields[1:], " "))
		if code := a.Create(key, value); arena.IsError(code) {
			return fmt.Errorf("seed: create %q: %s", key, code)
		}
	}
	return scanner.Err()
}
