package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
	"github.com/gyeh/bcbpscan/internal/normalize"
	"github.com/gyeh/bcbpscan/internal/payloads"
	"github.com/gyeh/bcbpscan/internal/specs"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run decode and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to payload file (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	reader, err := payloads.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open payload file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	var lines, decoded, filtered, legs int64
	formats := make(map[specs.FormatCode]int64)
	legCounts := make(map[int]int64)
	rejects := make(map[string]int64)
	seen := make(map[string]struct{})

	err = eachLine(reader, func(l payloads.Line) {
		lines++
		pass, err := parseLine(l)
		if err != nil {
			var pe *bcbp.ParseError
			if errors.As(err, &pe) {
				rejects[pe.Element.Name()]++
			} else {
				rejects[err.Error()]++
			}
			return
		}
		decoded++
		fc := pass.FormatCode()
		formats[fc]++
		if !cfg.AcceptsFormat(fc) {
			filtered++
			return
		}
		n := len(pass.Segments())
		legCounts[n]++
		legs += int64(n)
		seen[normalize.PayloadHashHex(l.Payload)] = struct{}{}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to read payload file")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== bcbpscan plan ===")
	fmt.Printf("File:        %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:     %s\n", sha)
	fmt.Printf("Size:        %d bytes\n", stat.Size())
	fmt.Printf("Lines:       %d\n", lines)
	fmt.Printf("Decoded:     %d\n", decoded)
	fmt.Printf("Rejected:    %d\n", lines-decoded)
	fmt.Printf("Filtered:    %d (format codes %v)\n", filtered, cfg.FormatCodes)
	fmt.Println()

	fmt.Println("Format codes:")
	for _, fc := range specs.FormatCodes() {
		if n := formats[fc]; n > 0 {
			fmt.Printf("  %-10s %6d\n", fc.Name(), n)
		}
	}

	fmt.Println("Legs per pass:")
	for n := 1; n <= bcbp.MaxSegments; n++ {
		if c := legCounts[n]; c > 0 {
			fmt.Printf("  %d          %6d\n", n, c)
		}
	}

	if len(rejects) > 0 {
		fmt.Println("Rejections by element:")
		keys := make([]string, 0, len(rejects))
		for k := range rejects {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-28s %6d\n", k, rejects[k])
		}
	}

	accepted := decoded - filtered
	fmt.Printf("\nProjected passes:   %d (%d duplicate payloads in file)\n", len(seen), accepted-int64(len(seen)))
	fmt.Printf("Projected segments: ~%d\n", legs)

	if lines > decoded {
		reader.Close()
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
