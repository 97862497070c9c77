package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/parsing"
	"github.com/jonathan/ats-analyzer/internal/scoring"
	"github.com/jonathan/ats-analyzer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description offline",
	Long: `Extracts skills, experience and education from a resume text file and a
job description, computes the compatibility score and writes the result as
JSON. No database is required.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScore,
}

var (
	scoreConfigPath string
	scoreResume     string
	scoreJob        string
	scoreJobURL     string
	scoreDictionary string
	scoreOutputFile string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume text file")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	scoreCmd.Flags().StringVar(&scoreDictionary, "dictionary", "", "Path to a custom skill dictionary JSON file")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed extraction output")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Resume:     scoreResume,
		Job:        scoreJob,
		JobURL:     scoreJobURL,
		Dictionary: scoreDictionary,
	}

	if scoreConfigPath != "" {
		fileCfg, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("resume file is required (use --resume)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("must provide either --job or --job-url")
	}

	dict, err := loadDictionary(cfg.Dictionary)
	if err != nil {
		return err
	}

	resumeRaw, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	jobText, err := readJobText(cfg)
	if err != nil {
		return err
	}

	resumeText := ingestion.NormalizeText(string(resumeRaw))
	extract := parsing.ExtractResume(dict, resumeText, nil)
	req := parsing.ParseJobDescription(dict, jobText)

	jobSkills := types.SkillsFromNames(req.Skills)
	requiredYears := types.YearsForLevel(req.ExperienceLevel)
	if req.ExperienceYears != nil {
		requiredYears = *req.ExperienceYears
	}

	skillScore := scoring.SkillScore(dict, jobSkills, extract.Skills)
	experienceScore := scoring.ExperienceScore(requiredYears, extract.Experience, resumeText)
	educationScore := scoring.EducationScore(extract.Education, req.Education)
	matched, missing := scoring.MatchSkills(dict, jobSkills, extract.Skills)
	breakdown := types.DefaultBreakdown()

	rec := &types.ScoreRecord{
		SkillScore:      skillScore,
		ExperienceScore: experienceScore,
		EducationScore:  educationScore,
		FinalScore:      scoring.FinalScore(skillScore, experienceScore, educationScore, breakdown),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Breakdown:       breakdown,
	}

	if scoreVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintResumeExtract(&extract)
		printer.PrintJobRequirements(&req)
		printer.PrintScore(rec)
	}

	return writeJSON(scoreOutputFile, rec)
}

// readJobText loads the job description from a file or fetches it from a URL.
func readJobText(cfg config.Config) (string, error) {
	if cfg.Job != "" {
		raw, err := os.ReadFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(raw), nil
	}

	text, err := ingestion.FetchJobDescription(context.Background(), cfg.JobURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	return text, nil
}
