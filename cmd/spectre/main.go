// Command spectre drives the EVM security-assurance toolkit: differential
// execution between two forks, and adversarial test-case generation for a
// catalogued EIP. Flag parsing, help text, and output formatting are
// deliberately minimal -- the CLI surface is not part of this system's
// core (see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/atahabilder1/SPECTRE/internal/core"
	"github.com/atahabilder1/SPECTRE/internal/diff"
	"github.com/atahabilder1/SPECTRE/internal/eip"
	"github.com/atahabilder1/SPECTRE/internal/gen"
	"github.com/atahabilder1/SPECTRE/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: spectre <diff|gen> [flags]")
		return 2
	}

	logger := log.Default().Module("spectre")

	switch args[0] {
	case "diff":
		return runDiff(logger, args[1:])
	case "gen":
		return runGen(logger, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", args[0])
		return 2
	}
}

func runDiff(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	seed := fs.Int64("seed", 1, "generator seed")
	count := fs.Int("count", 20, "number of random candidates to try")
	gasLimit := fs.Uint64("gas", 1_000_000, "gas limit per candidate")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	candidates := gen.Random(*seed, *count)
	candidates = append(candidates, gen.Grammar(*seed, *count, 64)...)
	candidates = append(candidates, gen.Boundary()...)
	candidates = append(candidates, gen.Sequence()...)

	found := 0
	for i, c := range candidates {
		d, err := diff.Run(c, *gasLimit, core.Frontier, core.Shanghai)
		if err != nil {
			logger.Error("candidate execution failed", "index", i, "err", err)
			continue
		}
		if d.Classification == diff.NoDivergence || d.Expected {
			continue
		}
		found++
		minimized := diff.MinimizeDivergence([]byte(c), *gasLimit, core.Frontier, core.Shanghai, d.Classification)
		logger.Warn("unexpected divergence",
			"classification", d.Classification.String(),
			"original_len", len(c),
			"minimized_len", len(minimized))
	}

	logger.Info("differential run complete", "candidates", len(candidates), "unexpected_divergences", found)
	printSummary(fmt.Sprintf("differential run complete over %d candidates, %d unexpected divergence(s)", len(candidates), found))
	return 0
}

// printSummary writes a single human-facing line to stdout using the
// terminal-friendly formatter, independent of the structured JSON log
// stream the subsystems write to stderr.
func printSummary(msg string) {
	f := &log.TextFormatter{}
	fmt.Println(f.Format(log.LogEntry{
		Timestamp: time.Now(),
		Level:     log.INFO,
		Message:   msg,
	}))
}

func runGen(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	eipNumber := fs.Int("eip", 3855, "EIP number to generate test cases for")
	outFormat := fs.String("format", "native", "native|ecosystem")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	entry, ok := eip.ByNumber(*eipNumber)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown EIP %d\n", *eipNumber)
		return 2
	}

	strategies := []eip.Strategy{
		eip.StrategyBoundary, eip.StrategyOpcodeInteraction, eip.StrategyCallContext,
		eip.StrategyGasExhaustion, eip.StrategyForkBoundary, eip.StrategyStackDepth,
	}
	cases := eip.GenerateTestCases(entry, strategies)
	logger.Info("generated test cases", "eip", entry.Number, "count", len(cases))
	printSummary(fmt.Sprintf("generated %d test case(s) for EIP-%d (%s)", len(cases), entry.Number, entry.Title))

	var (
		out []byte
		err error
	)
	switch *outFormat {
	case "ecosystem":
		doc := eip.BuildEcosystemFixture(cases)
		out, err = eip.MarshalEcosystemFixture(doc)
	default:
		nf := eip.BuildNativeFixture(entry, cases, time.Now().UTC().Format(time.RFC3339))
		out, err = eip.MarshalNativeFixture(nf)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal fixture: %v\n", err)
		return 1
	}

	fmt.Println(string(out))
	return 0
}
