package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flier/kvarena/pkg/arena"
)

var (
	benchEntries int
	benchChurn   int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Churn synthetic entries through a fresh arena and report collector effectiveness",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchEntries, "entries", 256, "number of entries to create")
	benchCmd.Flags().IntVar(&benchChurn, "churn", 3, "number of delete+recreate passes over the even-indexed entries")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := cfg.NewArena()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for i := 0; i < benchEntries; i++ {
		key, value := benchEntry(i)
		if code := a.Create(key, value); arena.IsError(code) {
			fmt.Fprintf(out, "stopped after %d entries: create: %s\n", i, code)
			break
		}
	}
	fmt.Fprintf(out, "loaded: count=%d size_used=%d\n", a.Count(), a.SizeUsed())

	for pass := 0; pass < benchChurn; pass++ {
		for i := 0; i < benchEntries; i += 2 {
			key, value := benchEntry(i)
			if code := a.Delete(key); arena.IsError(code) {
				continue
			}
			if code := a.Create(key, value); arena.IsError(code) {
				fmt.Fprintf(out, "pass %d: recreate %q: %s\n", pass, key, code)
			}
		}
	}
	fmt.Fprintf(out, "after churn: %s\n", statsLine(a))

	reclaimed := a.Clean()
	fmt.Fprintf(out, "after clean: reclaimed=%d %s\n", reclaimed, statsLine(a))

	return nil
}

func benchEntry(i int) (key, value []byte) {
	return []byte(fmt.Sprintf("key-%06d", i)), []byte(fmt.Sprintf("value-%06d", i))
}

func statsLine(a *arena.Arena) string {
	return fmt.Sprintf("count=%d garbage_count=%d garbage_size=%d size_used=%d",
		a.Count(), a.GarbageCount(), a.GarbageSize(), a.SizeUsed())
}
