package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/ingestion"
	"github.com/jonathan/ats-analyzer/internal/observability"
	"github.com/jonathan/ats-analyzer/internal/parsing"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract structured requirements from a job description",
	Long:  "Extracts skills, experience level, education requirement and responsibilities from a job description file or URL and writes the result as JSON.",
	RunE:  runParseJob,
}

var (
	parseInputFile  string
	parseJobURL     string
	parseOutputFile string
	parseDictionary string
	parseVerbose    bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job description text file (mutually exclusive with --url)")
	parseJobCmd.Flags().StringVar(&parseJobURL, "url", "", "URL to fetch the job description from (mutually exclusive with --in)")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseJobCmd.Flags().StringVar(&parseDictionary, "dictionary", "", "Path to a custom skill dictionary JSON file")
	parseJobCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a formatted summary to stderr")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	if parseInputFile != "" && parseJobURL != "" {
		return fmt.Errorf("cannot use --in with --url")
	}
	if parseInputFile == "" && parseJobURL == "" {
		return fmt.Errorf("must provide either --in or --url")
	}

	dict, err := loadDictionary(parseDictionary)
	if err != nil {
		return err
	}

	var text string
	if parseInputFile != "" {
		raw, err := os.ReadFile(parseInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(raw)
	} else {
		text, err = ingestion.FetchJobDescription(context.Background(), parseJobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job description: %w", err)
		}
	}

	req := parsing.ParseJobDescription(dict, text)

	if parseVerbose {
		observability.NewPrinter(os.Stderr).PrintJobRequirements(&req)
	}

	return writeJSON(parseOutputFile, req)
}
