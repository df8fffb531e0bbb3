// mkfixture writes synthetic BCBP payloads, one per line, for load and
// integration testing. A fixed seed always yields the same file.
// Usage: go run ./cmd/mkfixture --out testdata/scans.txt --n 500 --seed 7 --invalid 10
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/specs"
)

var (
	lastNames  = []string{"DESMARAIS", "NGUYEN", "OKAFOR", "SCHMIDT", "TANAKA", "GARCIA LOPEZ", "OBRIEN", "KOWALSKA"}
	firstNames = []string{"LUC", "ANNA", "CHIDI", "MARIA", "KENJI", "JOHN MR", "EVA MRS", "PAT"}
	airportSet = []string{"YUL", "YYZ", "FRA", "MUC", "JFK", "ORD", "SFO", "LHR", "CDG", "NRT", "GRU", "SYD"}
	carriers   = []string{"AC", "LH", "UA", "BA", "AF", "NH", "LA", "QF"}
	cabins     = []string{"F", "J", "C", "W", "Y", "M", "K"}
)

type generator struct {
	rng *rand.Rand
}

func main() {
	out := flag.String("out", "testdata/scans.txt", "output payload file")
	n := flag.Int("n", 200, "number of valid payloads")
	seed := flag.Uint64("seed", 1, "random seed")
	invalid := flag.Int("invalid", 0, "number of malformed payloads to mix in")
	multi := flag.Float64("multi", 0.3, "share of multi-leg passes")
	flag.Parse()

	g := &generator{rng: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	w := bufio.NewWriter(f)

	var written, bad int
	for written+bad < *n+*invalid {
		if bad < *invalid && (written == *n || g.rng.IntN(*n+*invalid) < *invalid) {
			fmt.Fprintln(w, g.malformed())
			bad++
			continue
		}
		legs := 1
		if g.rng.Float64() < *multi {
			legs = 2 + g.rng.IntN(bcbp.MaxSegments-1)
		}
		raw, err := bcbp.Encode(g.pass(legs))
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode payload %d: %v\n", written+1, err)
			os.Exit(1)
		}
		fmt.Fprintln(w, raw)
		written++
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d payloads (%d malformed) to %s\n", written+bad, bad, *out)
}

func (g *generator) pick(from []string) string {
	return from[g.rng.IntN(len(from))]
}

func (g *generator) pass(legs int) *bcbp.BoardingPass {
	pb := bcbp.NewPassBuilder()
	g.set(pb.Element, specs.ElementPassengerName, g.pick(lastNames)+"/"+g.pick(firstNames))
	g.set(pb.Element, specs.ElementETicketIndicator, "E")

	full := g.rng.IntN(3) > 0
	if full {
		g.set(pb.Element, specs.ElementVersionNumber, "6")
		g.set(pb.Element, specs.ElementPassengerDescription, fmt.Sprint(g.rng.IntN(4)))
		g.set(pb.Element, specs.ElementSourceOfCheckIn, g.pick([]string{"W", "K", "M", "O"}))
		g.set(pb.Element, specs.ElementSourceOfIssuance, g.pick([]string{"W", "K", "M", "O"}))
		g.set(pb.Element, specs.ElementDateOfIssuance, fmt.Sprintf("6%03d", 1+g.rng.IntN(365)))
		g.set(pb.Element, specs.ElementDocumentType, "B")
	}

	from := g.pick(airportSet)
	pnr := g.pnr()
	day := 1 + g.rng.IntN(365)
	for i := 0; i < legs; i++ {
		to := g.pick(airportSet)
		for to == from {
			to = g.pick(airportSet)
		}
		carrier := g.pick(carriers)
		sb := bcbp.NewSegmentBuilder()
		g.set(sb.Element, specs.ElementPNRCode, pnr)
		g.set(sb.Element, specs.ElementFromCity, from)
		g.set(sb.Element, specs.ElementToCity, to)
		g.set(sb.Element, specs.ElementOperatingCarrier, carrier)
		g.set(sb.Element, specs.ElementFlightNumber, fmt.Sprintf("%04d", 1+g.rng.IntN(9998)))
		g.set(sb.Element, specs.ElementDateOfFlight, fmt.Sprintf("%03d", day))
		g.set(sb.Element, specs.ElementCompartmentCode, g.pick(cabins))
		g.set(sb.Element, specs.ElementSeatNumber, fmt.Sprintf("%03d%c", 1+g.rng.IntN(60), 'A'+rune(g.rng.IntN(6))))
		g.set(sb.Element, specs.ElementCheckInSequence, fmt.Sprintf("%04d", 1+g.rng.IntN(400)))
		g.set(sb.Element, specs.ElementPassengerStatus, "1")
		if full {
			g.set(sb.Element, specs.ElementAirlineNumericCode, fmt.Sprintf("%03d", g.rng.IntN(1000)))
			g.set(sb.Element, specs.ElementSerialNumber, fmt.Sprintf("%010d", g.rng.Int64N(1e10)))
			g.set(sb.Element, specs.ElementSelecteeIndicator, "0")
			g.set(sb.Element, specs.ElementDocumentVerification, g.pick([]string{"0", "1", "2"}))
			g.set(sb.Element, specs.ElementMarketingCarrier, carrier)
		}
		if err := pb.Segment(sb.Build()); err != nil {
			fmt.Fprintf(os.Stderr, "add segment: %v\n", err)
			os.Exit(1)
		}
		from = to
		day = day%365 + 1
	}
	return pb.Build()
}

func (g *generator) pnr() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = alphabet[g.rng.IntN(len(alphabet))]
	}
	return string(b)
}

// malformed returns a payload that fails to parse: a valid one cut short
// or with a bad leg count.
func (g *generator) malformed() string {
	raw, err := bcbp.Encode(g.pass(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode payload: %v\n", err)
		os.Exit(1)
	}
	if g.rng.IntN(2) == 0 {
		return raw[:2+g.rng.IntN(40)]
	}
	return raw[:1] + "0" + raw[2:]
}

func (g *generator) set(put func(specs.Element, string) error, e specs.Element, v string) {
	if err := put(e, v); err != nil {
		fmt.Fprintf(os.Stderr, "set %s: %v\n", e, err)
		os.Exit(1)
	}
}
