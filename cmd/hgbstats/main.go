// hgbstats prints the outcome distributions of attack scenarios.
// Usage: hgbstats [-json] [-pdf dir] [-v] scenario.yaml...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hgbdice/internal/analysis"
	"hgbdice/internal/game"
	"hgbdice/internal/report"
	"hgbdice/internal/scenario"
	"hgbdice/internal/telemetry"
)

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hgbstats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print results as JSON")
	pdfDir := fs.String("pdf", "", "write a PDF report per scenario into `dir`")
	verbose := fs.Bool("v", false, "log every pipeline step")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "usage: hgbstats [-json] [-pdf dir] [-v] scenario.yaml...\n")
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := telemetry.NewLogger(level, "console")
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	outcomes := make([]*scenario.Outcome, 0, fs.NArg())
	for _, path := range fs.Args() {
		doc, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		out, err := scenario.Analyze(ctx, doc, game.WithLogger(log.With(zap.String("scenario", doc.Name))))
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			return 1
		}
		outcomes = append(outcomes, out)

		if *pdfDir != "" {
			if err := writeReport(*pdfDir, out); err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", path, err)
				return 1
			}
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcomes); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}
	p := message.NewPrinter(language.English)
	for _, out := range outcomes {
		printOutcome(p, stdout, out)
	}
	return 0
}

func writeReport(dir string, out *scenario.Outcome) error {
	b, err := report.Generate(out.Name, out.Summary, out.Results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(filepath.Clean(dir), out.Name+".pdf"), b, 0o600)
}

func printOutcome(p *message.Printer, w io.Writer, out *scenario.Outcome) {
	p.Fprintf(w, "== %s (%d outcomes)\n", out.Name, out.Worlds)
	p.Fprintf(w, "Attacker: %s\nDefender: %s\n", out.Summary.Attacker, out.Summary.Defender)
	for _, r := range out.Results {
		p.Fprintf(w, "\n%s: %s\n", r.Name, r.Description)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		all := r.All()
		if r.Type == analysis.Range {
			p.Fprintf(tw, "value\tprob\tat least\n")
			for i, pt := range all.Totals {
				p.Fprintf(tw, "%g\t%s\t%s\n", pt.Value, report.Percent(pt.Prob), report.Percent(all.MinTotals[i].Prob))
			}
		}
		p.Fprintf(tw, "source\taverage\ton success\n")
		for _, s := range r.Sources {
			if r.Type == analysis.Bool {
				p.Fprintf(tw, "%s\t%s\t%s\n", s.Source, report.Percent(s.Average), report.Percent(s.NormalizedAverage))
				continue
			}
			p.Fprintf(tw, "%s\t%.3f\t%.3f\n", s.Source, s.Average, s.NormalizedAverage)
		}
		_ = tw.Flush()
	}
	p.Fprintf(w, "\n")
}
