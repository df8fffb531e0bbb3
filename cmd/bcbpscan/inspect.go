package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
	"github.com/gyeh/bcbpscan/internal/parquetio"
)

var inspectTop int

var inspectCmd = &cobra.Command{
	Use:   "inspect <export.parquet>",
	Short: "Validate a Parquet segment export and print its stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "How many carriers and airports to list")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	st, err := parquetio.Scan(args[0])
	if err != nil {
		log.Error().Err(err).Msg("export is not readable")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== bcbpscan inspect ===")
	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Segments:  %d\n", st.Rows)
	fmt.Printf("Passes:    %d\n", st.Passes)
	printTop("Carriers", st.Carriers, inspectTop)
	printTop("Airports", st.Airports, inspectTop)
	fmt.Println("Schema validation: OK")
	return nil
}

// printTop lists the n most frequent keys, ties broken alphabetically.
func printTop(title string, counts map[string]int64, n int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	fmt.Printf("%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-6s %6d\n", k, counts[k])
	}
}
