// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRequirements outputs a human-readable summary of the requirements
// extracted from a job description.
func (p *Printer) PrintJobRequirements(req *types.JobRequirements) {
	if req == nil {
		return
	}

	var sb strings.Builder

	if req.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:     %s\n", req.ExperienceLevel))
	}
	if req.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Years:     %d\n", *req.ExperienceYears))
	}
	if req.Education != "" {
		sb.WriteString(fmt.Sprintf("Education: %s\n", req.Education))
	}
	sb.WriteString("\n")

	if len(req.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(req.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.RequiredSkills[i]))
		}
		if len(req.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(req.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(req.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.PreferredSkills[i]))
		}
		if len(req.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.PreferredSkills)-3))
		}
		sb.WriteString("\n")
	}

	if len(req.Responsibilities) > 0 {
		sb.WriteString(fmt.Sprintf("Responsibilities: %d extracted\n", len(req.Responsibilities)))
	}

	p.printBox("EXTRACTED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeExtract outputs the signals extracted from a résumé.
func (p *Printer) PrintResumeExtract(extract *types.ResumeExtract) {
	if extract == nil {
		return
	}

	var sb strings.Builder

	if len(extract.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(extract.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", extract.Skills[i]))
		}
		if len(extract.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(extract.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(extract.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(extract.Education), 3)
		for i := 0; i < count; i++ {
			entry := extract.Education[i]
			if len(entry) > 50 {
				entry = entry[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", entry))
		}
		sb.WriteString("\n")
	}

	if extract.Experience != "" {
		experience := extract.Experience
		if len(experience) > 50 {
			experience = experience[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Experience: %s\n", experience))
	}

	if sb.Len() == 0 {
		sb.WriteString("No signals extracted\n")
	}

	p.printBox("RESUME EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs a score record with its breakdown.
func (p *Printer) PrintScore(rec *types.ScoreRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Final Score:      %d\n", rec.FinalScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:           %d  (weight %d%%)\n", rec.SkillScore, rec.Breakdown.SkillWeight))
	sb.WriteString(fmt.Sprintf("Experience:       %d  (weight %d%%)\n", rec.ExperienceScore, rec.Breakdown.ExperienceWeight))
	sb.WriteString(fmt.Sprintf("Education:        %d  (weight %d%%)\n", rec.EducationScore, rec.Breakdown.EducationWeight))

	if len(rec.MatchedSkills) > 0 {
		matched := strings.Join(rec.MatchedSkills, ", ")
		if len(matched) > 40 {
			matched = matched[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMatched:  %s\n", matched))
	}
	if len(rec.MissingSkills) > 0 {
		missing := strings.Join(rec.MissingSkills, ", ")
		if len(missing) > 40 {
			missing = missing[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", missing))
	}

	p.printBox("COMPATIBILITY SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankings outputs the top ranked candidates for a job.
func (p *Printer) PrintRankings(entries []db.RankingEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO SCORED CANDIDATES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", entry.Rank, entry.CandidateName))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", entry.FinalScore))
		if len(entry.MatchedSkills) > 0 {
			matched := strings.Join(entry.MatchedSkills, ", ")
			if len(matched) > 40 {
				matched = matched[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", matched))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(entries)-maxItemsToShow))
	}

	p.printBox("CANDIDATE RANKINGS", sb.String())
}
