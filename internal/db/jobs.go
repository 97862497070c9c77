package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// CreateJob stores a job posting with its weighted skill list.
func (db *DB) CreateJob(ctx context.Context, title, description string, skills []types.Skill, experienceLevel string) (*Job, error) {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job skills: %w", err)
	}

	var j Job
	var rawSkills []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, skills, experience_level)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, description, skills, experience_level, created_at, updated_at`,
		title, description, skillsJSON, experienceLevel,
	).Scan(&j.ID, &j.Title, &j.Description, &rawSkills, &j.ExperienceLevel, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := json.Unmarshal(rawSkills, &j.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job skills: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by id, or (nil, nil) when none exists.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	var rawSkills []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, skills, experience_level, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Description, &rawSkills, &j.ExperienceLevel, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := json.Unmarshal(rawSkills, &j.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job skills: %w", err)
	}
	return &j, nil
}

// ListJobs returns all stored jobs, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, skills, experience_level, created_at, updated_at
		 FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var j Job
		var rawSkills []byte
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &rawSkills, &j.ExperienceLevel, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := json.Unmarshal(rawSkills, &j.Skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job skills: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DeleteJob removes a job posting. Scores that reference it keep their row
// with a nulled job id.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
