package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/api"
	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
	"github.com/gyeh/bcbpscan/internal/payloads"
)

var decodeIndent bool

var decodeCmd = &cobra.Command{
	Use:   "decode [payload...]",
	Short: "Decode payloads and print them as JSON",
	Long: "Decodes each payload given as an argument, or every line of --file, " +
		"or every line of stdin when neither is given. One JSON document is " +
		"printed per decoded pass.",
	RunE: runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to payload file, one BCBP string per line")
	f.BoolVar(&decodeIndent, "indent", false, "Pretty-print JSON output")
	addCityFlags(decodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	cities := loadCities(log)

	enc := json.NewEncoder(os.Stdout)
	if decodeIndent {
		enc.SetIndent("", "  ")
	}
	now := time.Now()
	var decoded, failed int

	emit := func(l payloads.Line) {
		pass, err := parseLine(l)
		if err != nil {
			failed++
			logDecodeFailure(log, l.Number, err)
			return
		}
		if err := enc.Encode(api.NewPassView(pass, now, cities)); err != nil {
			log.Error().Err(err).Msg("write output failed")
			os.Exit(exitcode.DecodeError)
		}
		decoded++
	}

	if len(args) > 0 {
		for i, raw := range args {
			emit(payloads.Line{Number: int64(i + 1), Payload: raw})
		}
	} else {
		reader, err := openPayloads()
		if err != nil {
			log.Error().Err(err).Msg("failed to open payload input")
			os.Exit(exitcode.ValidationError)
		}
		defer reader.Close()

		if err := eachLine(reader, emit); err != nil {
			log.Error().Err(err).Msg("failed to read payload input")
			os.Exit(exitcode.ValidationError)
		}
	}

	if code := decodeExitCode(decoded, failed); code != exitcode.Success {
		log.Warn().Int("decoded", decoded).Int("failed", failed).Msg("some payloads could not be decoded")
		os.Exit(code)
	}
	return nil
}

// decodeExitCode is PartialSuccess when some payloads decoded and some did
// not, DecodeError when every payload failed.
func decodeExitCode(decoded, failed int) int {
	switch {
	case failed == 0:
		return exitcode.Success
	case decoded == 0:
		return exitcode.DecodeError
	default:
		return exitcode.PartialSuccess
	}
}

// parseLine rejects lines that cannot be stored as text, then decodes.
func parseLine(l payloads.Line) (*bcbp.BoardingPass, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return bcbp.Parse(l.Payload)
}

// openPayloads reads --file when set, stdin otherwise.
func openPayloads() (*payloads.Reader, error) {
	if cfg.FilePath != "" {
		return payloads.Open(cfg.FilePath)
	}
	return payloads.NewReader(os.Stdin), nil
}

// eachLine calls fn for every payload line until the reader is exhausted.
func eachLine(r *payloads.Reader, fn func(payloads.Line)) error {
	buf := make([]payloads.Line, 256)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			fn(buf[i])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func logDecodeFailure(log zerolog.Logger, line int64, err error) {
	ev := log.Warn().Err(err).Int64("line", line)
	var pe *bcbp.ParseError
	if errors.As(err, &pe) {
		ev = ev.Str("element", pe.Element.Name()).Int("offset", pe.Offset)
	}
	ev.Msg("decode failed")
}
