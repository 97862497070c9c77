package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores a résumé and its extracted signals, returning the full
// record.
func (db *DB) CreateResume(ctx context.Context, candidateName, parsedText string, skills, education []string, experience string) (*Resume, error) {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	educationJSON, err := json.Marshal(education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	var r Resume
	var rawSkills, rawEducation []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (candidate_name, parsed_text, extracted_skills, extracted_education, extracted_experience, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, candidate_name, parsed_text, extracted_skills, extracted_education, extracted_experience, status, created_at, updated_at`,
		candidateName, parsedText, skillsJSON, educationJSON, experience, ResumeStatusUploaded,
	).Scan(&r.ID, &r.CandidateName, &r.ParsedText, &rawSkills, &rawEducation, &r.ExtractedExperience, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if err := unmarshalResumeLists(&r, rawSkills, rawEducation); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetResume retrieves a résumé by id, or (nil, nil) when none exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var rawSkills, rawEducation []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_name, parsed_text, extracted_skills, extracted_education, extracted_experience, status, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.CandidateName, &r.ParsedText, &rawSkills, &rawEducation, &r.ExtractedExperience, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := unmarshalResumeLists(&r, rawSkills, rawEducation); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResumeIDs returns the ids of all stored résumés, oldest first.
func (db *DB) ListResumeIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx, `SELECT id FROM resumes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan resume id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkResumeScored flips a résumé's status after its score is persisted.
func (db *DB) MarkResumeScored(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = NOW() WHERE id = $2`,
		ResumeStatusScored, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark resume scored: %w", err)
	}
	return nil
}

// DeleteResume removes a résumé. Its score row goes with it through the
// foreign key cascade.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

func unmarshalResumeLists(r *Resume, rawSkills, rawEducation []byte) error {
	if err := json.Unmarshal(rawSkills, &r.ExtractedSkills); err != nil {
		return fmt.Errorf("failed to unmarshal extracted skills: %w", err)
	}
	if err := json.Unmarshal(rawEducation, &r.ExtractedEducation); err != nil {
		return fmt.Errorf("failed to unmarshal extracted education: %w", err)
	}
	return nil
}
