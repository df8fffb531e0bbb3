package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
	"github.com/gyeh/bcbpscan/internal/model"
	"github.com/gyeh/bcbpscan/internal/normalize"
	"github.com/gyeh/bcbpscan/internal/parquetio"
	"github.com/gyeh/bcbpscan/internal/payloads"
)

const exportBatchSize = 1024

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Decode a payload file into a Parquet file of flight segments",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to payload file (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Path of the Parquet file to write (required)")
	addCityFlags(exportCmd)
	_ = exportCmd.MarkFlagRequired("file")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	start := time.Now()

	if err := cfg.ValidateExport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	cities := loadCities(log)

	reader, err := payloads.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to open payload file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	w, err := parquetio.Create[model.SegmentRow](cfg.OutPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to create parquet file")
		os.Exit(exitcode.ExportError)
	}

	var lines, rejected int64
	batch := make([]model.SegmentRow, 0, exportBatchSize)
	var writeErr error

	flush := func() {
		if len(batch) == 0 || writeErr != nil {
			return
		}
		_, writeErr = w.Write(batch)
		batch = batch[:0]
	}

	readErr := eachLine(reader, func(l payloads.Line) {
		lines++
		pass, err := parseLine(l)
		if err != nil {
			rejected++
			logDecodeFailure(log, l.Number, err)
			return
		}
		if !cfg.AcceptsFormat(pass.FormatCode()) {
			rejected++
			log.Warn().Int64("line", l.Number).Str("format_code", pass.FormatCode().Value()).Msg("format code not accepted")
			return
		}
		_, segs, err := normalize.ToRows(pass, l.Payload, normalize.Source{
			Line:   l.Number,
			Now:    start,
			Cities: cities,
		})
		if err != nil {
			rejected++
			logDecodeFailure(log, l.Number, err)
			return
		}
		for _, s := range segs {
			batch = append(batch, *s)
		}
		if len(batch) >= exportBatchSize {
			flush()
		}
	})
	flush()

	closeErr := w.Close()
	switch {
	case readErr != nil:
		log.Error().Err(readErr).Msg("failed to read payload file")
		os.Exit(exitcode.ValidationError)
	case writeErr != nil:
		log.Error().Err(writeErr).Msg("parquet write failed")
		os.Exit(exitcode.ExportError)
	case closeErr != nil:
		log.Error().Err(closeErr).Msg("parquet close failed")
		os.Exit(exitcode.ExportError)
	}

	st, err := parquetio.Verify(cfg.OutPath, w.Rows())
	if err != nil {
		log.Error().Err(err).Msg("export verification failed")
		os.Exit(exitcode.ExportError)
	}

	log.Info().
		Int64("passes_written", st.Passes).
		Int64("lines_read", lines).
		Int64("lines_rejected", rejected).
		Int64("segments_written", w.Rows()).
		Str("duration", time.Since(start).String()).
		Msg("export complete")
	fmt.Printf("Export complete: %d segments written to %s\n", w.Rows(), cfg.OutPath)

	if rejected > 0 {
		reader.Close()
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
