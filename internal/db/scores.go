package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// SaveOrReplace upserts a score record keyed by résumé id, keeping at most
// one score per résumé. Recomputing overwrites the previous record in place.
func (db *DB) SaveOrReplace(ctx context.Context, rec *types.ScoreRecord) error {
	matchedJSON, err := json.Marshal(rec.MatchedSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missingJSON, err := json.Marshal(rec.MissingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO scores (resume_id, job_id, skill_score, experience_score, education_score, final_score,
		                     matched_skills, missing_skills, skill_weight, experience_weight, education_weight)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (resume_id) DO UPDATE SET
		   job_id = EXCLUDED.job_id,
		   skill_score = EXCLUDED.skill_score,
		   experience_score = EXCLUDED.experience_score,
		   education_score = EXCLUDED.education_score,
		   final_score = EXCLUDED.final_score,
		   matched_skills = EXCLUDED.matched_skills,
		   missing_skills = EXCLUDED.missing_skills,
		   skill_weight = EXCLUDED.skill_weight,
		   experience_weight = EXCLUDED.experience_weight,
		   education_weight = EXCLUDED.education_weight,
		   updated_at = NOW()`,
		rec.ResumeID, rec.JobID, rec.SkillScore, rec.ExperienceScore, rec.EducationScore, rec.FinalScore,
		matchedJSON, missingJSON, rec.Breakdown.SkillWeight, rec.Breakdown.ExperienceWeight, rec.Breakdown.EducationWeight,
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// GetScoreByResumeID retrieves the score record for a résumé, or (nil, nil)
// when the résumé has not been scored yet.
func (db *DB) GetScoreByResumeID(ctx context.Context, resumeID uuid.UUID) (*types.ScoreRecord, error) {
	var rec types.ScoreRecord
	var matchedJSON, missingJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT resume_id, job_id, skill_score, experience_score, education_score, final_score,
		        matched_skills, missing_skills, skill_weight, experience_weight, education_weight
		 FROM scores WHERE resume_id = $1`,
		resumeID,
	).Scan(&rec.ResumeID, &rec.JobID, &rec.SkillScore, &rec.ExperienceScore, &rec.EducationScore, &rec.FinalScore,
		&matchedJSON, &missingJSON, &rec.Breakdown.SkillWeight, &rec.Breakdown.ExperienceWeight, &rec.Breakdown.EducationWeight)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	if err := json.Unmarshal(matchedJSON, &rec.MatchedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
	}
	if err := json.Unmarshal(missingJSON, &rec.MissingSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing skills: %w", err)
	}
	return &rec, nil
}

// JobRankings lists the scores for a job ordered by final score descending.
// Score-range filters apply in the query; the skill filter applies after,
// and ranks are assigned 1-based over the filtered list.
func (db *DB) JobRankings(ctx context.Context, jobID uuid.UUID, filters RankingFilters) ([]RankingEntry, error) {
	query := `SELECT s.resume_id, r.candidate_name, s.final_score, s.skill_score, s.experience_score, s.education_score,
	                 s.matched_skills, s.missing_skills
	          FROM scores s
	          JOIN resumes r ON r.id = s.resume_id
	          WHERE s.job_id = $1`
	args := []any{jobID}

	if filters.MinScore != nil {
		args = append(args, *filters.MinScore)
		query += fmt.Sprintf(" AND s.final_score >= $%d", len(args))
	}
	if filters.MaxScore != nil {
		args = append(args, *filters.MaxScore)
		query += fmt.Sprintf(" AND s.final_score <= $%d", len(args))
	}
	query += " ORDER BY s.final_score DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	entries := make([]RankingEntry, 0)
	for rows.Next() {
		var e RankingEntry
		var matchedJSON, missingJSON []byte
		if err := rows.Scan(&e.ResumeID, &e.CandidateName, &e.FinalScore, &e.SkillScore, &e.ExperienceScore, &e.EducationScore,
			&matchedJSON, &missingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		if err := json.Unmarshal(matchedJSON, &e.MatchedSkills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
		}
		if err := json.Unmarshal(missingJSON, &e.MissingSkills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal missing skills: %w", err)
		}
		if matchesSkillFilter(e.MatchedSkills, filters.Skills) {
			entries = append(entries, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// matchesSkillFilter reports whether any filter term appears as a
// case-insensitive substring of any matched skill. An empty filter matches
// everything.
func matchesSkillFilter(matched, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, term := range filter {
		lowered := strings.ToLower(term)
		for _, skill := range matched {
			if strings.Contains(strings.ToLower(skill), lowered) {
				return true
			}
		}
	}
	return false
}
