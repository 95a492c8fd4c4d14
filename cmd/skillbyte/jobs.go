package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/ingestion"
	"github.com/jonathan/skillbyte/internal/ranking"
	"github.com/jonathan/skillbyte/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Rank job archetypes for a skill list or a resume",
	Long: `Rank job archetypes either for an explicit skill list (--skills) or for the
skills detected in a resume (--in).

overlap mode orders tech jobs by the number of shared skills; eligibility mode
picks pre-authored recommendations for the experience level and skills.`,
	RunE: runJobs,
}

var (
	jobsSkills string
	jobsIn     string
	jobsMode   string
	jobsLevel  string
	jobsJSON   bool
)

func init() {
	jobsCmd.Flags().StringVarP(&jobsSkills, "skills", "s", "", "Comma-separated skills, e.g. React,CSS (mutually exclusive with --in)")
	jobsCmd.Flags().StringVarP(&jobsIn, "in", "i", "", "Resume path, URL or s3:// object (mutually exclusive with --skills)")
	jobsCmd.Flags().StringVarP(&jobsMode, "mode", "m", "overlap", "Ranking mode: overlap or eligibility")
	jobsCmd.Flags().StringVar(&jobsLevel, "level", string(types.TierBeginner), "Experience level for eligibility mode with --skills")
	jobsCmd.Flags().BoolVar(&jobsJSON, "json", false, "Print the ranking as JSON")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if jobsSkills == "" && jobsIn == "" {
		return fmt.Errorf("either --skills or --in must be provided")
	}
	if jobsSkills != "" && jobsIn != "" {
		return fmt.Errorf("--skills and --in are mutually exclusive; provide only one")
	}
	mode, err := ranking.ParseMode(jobsMode)
	if err != nil {
		return err
	}
	tier := types.ExperienceTier(jobsLevel)
	if !validTier(tier) {
		return fmt.Errorf("invalid --level %q", jobsLevel)
	}

	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	cfg.MatchMode = string(mode)
	p, err := newPipeline(ctx, cfg, remoteOff)
	if err != nil {
		return err
	}
	defer p.Close()

	var jobs []types.RankedMatch
	if jobsSkills != "" {
		skills := parseSkills(jobsSkills)
		if len(skills) == 0 {
			return fmt.Errorf("--skills contains no skill names")
		}
		profile := types.NewSkillProfile()
		profile.Technical = skills
		jobs, err = p.analyzer.Matcher().Match(mode, profile, skills, tier)
		if err != nil {
			return err
		}
	} else {
		store, err := newObjectStore(ctx, cfg)
		if err != nil {
			return err
		}
		text, _, err := ingestion.Ingest(ctx, fetch.NewResolver(store, cfg.UseBrowser), jobsIn)
		if err != nil {
			return err
		}
		report, err := p.analyzer.Analyze(ctx, text)
		if err != nil {
			return err
		}
		jobs = report.Recommendations
	}

	out := cmd.OutOrStdout()
	if jobsJSON {
		return printJSON(out, jobs)
	}
	_, _ = fmt.Fprintf(out, "Jobs (%s):\n", mode)
	printMatches(out, jobs)
	return nil
}

// parseSkills splits a comma-separated list, dropping blanks
func parseSkills(list string) []string {
	var skills []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func validTier(t types.ExperienceTier) bool {
	switch t {
	case types.TierBeginner, types.TierHighSchoolGraduate, types.TierEarlyCareer, types.TierIntermediate:
		return true
	}
	return false
}
