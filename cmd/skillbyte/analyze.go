package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/ingestion"
	"github.com/jonathan/skillbyte/internal/observability"
	"github.com/jonathan/skillbyte/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and print skills, experience level, job matches and feedback",
	Long: `Analyze a resume from a local file, an http(s) URL or an s3://bucket/key object.
Plain text, Markdown, HTML, PDF and DOCX documents are supported.

With --remote the configured provider (huggingface, openai or gemini) writes the
feedback; any remote failure falls back to the locally generated feedback.`,
	RunE: runAnalyze,
}

var (
	analyzeIn      string
	analyzeRemote  bool
	analyzeJSON    bool
	analyzeBrowser bool
	analyzeOut     string
	analyzeMode    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeIn, "in", "i", "", "Resume path, http(s) URL or s3:// object (required)")
	analyzeCmd.Flags().BoolVar(&analyzeRemote, "remote", false, "Request feedback from the configured remote provider")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render JavaScript-heavy resume pages in headless Chrome")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Directory to write the cleaned text, metadata and report to")
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "", "Recommendation mode: eligibility or overlap")

	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mode") {
		cfg.MatchMode = analyzeMode
	}
	if cmd.Flags().Changed("browser") {
		cfg.UseBrowser = analyzeBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	text, meta, err := ingestion.Ingest(ctx, fetch.NewResolver(store, cfg.UseBrowser), analyzeIn)
	if err != nil {
		return err
	}

	remote := remoteOff
	if analyzeRemote {
		remote = remoteOn
	}
	p, err := newPipeline(ctx, cfg, remote)
	if err != nil {
		return err
	}
	defer p.Close()

	report, err := p.analyzer.Analyze(ctx, text)
	if err != nil {
		return err
	}

	if analyzeOut != "" {
		if err := writeReport(analyzeOut, text, meta, report); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		return printJSON(out, report)
	}
	if cfg.Verbose {
		observability.NewPrinter(out).PrintReport(report)
		_, _ = fmt.Fprintln(out)
	}
	printSummary(out, report)
	return nil
}

func writeReport(outDir, text string, meta *ingestion.Metadata, report *types.Report) error {
	if err := ingestion.WriteOutput(outDir, text, meta); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	path := filepath.Join(outDir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func printSummary(w io.Writer, report *types.Report) {
	fmt.Fprintf(w, "Experience level: %s\n", report.Tier.Label())
	fmt.Fprintf(w, "Role:             %s\n", report.Role.Title())
	fmt.Fprintf(w, "Tech skills:      %s\n", joinOrNone(report.TechSkills))
	fmt.Fprintf(w, "Soft skills:      %s\n", joinOrNone(report.Profile.Soft))
	if len(report.Profile.Certifications) > 0 {
		fmt.Fprintf(w, "Certifications:   %s\n", strings.Join(report.Profile.Certifications, ", "))
	}

	fmt.Fprintln(w, "\nRecommended jobs:")
	printMatches(w, report.Recommendations)

	fmt.Fprintln(w, "\nFeedback:")
	fmt.Fprintln(w, strings.TrimRight(report.FeedbackText, "\n"))
	if report.RemoteError != "" {
		fmt.Fprintf(w, "\n(remote feedback unavailable: %s)\n", report.RemoteError)
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func printMatches(w io.Writer, matches []types.RankedMatch) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, m := range matches {
		line := fmt.Sprintf("  %d. %s", i+1, m.Job.Title)
		if m.Job.Company != "" {
			line += " @ " + m.Job.Company
		}
		switch {
		case m.Match > 0:
			line += fmt.Sprintf(" (%d%% match)", m.Match)
		case m.Score > 0:
			line += fmt.Sprintf(" (%d matching skills)", m.Score)
		}
		fmt.Fprintln(w, line)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
