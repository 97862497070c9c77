package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func resetScoreFlags() {
	scoreConfigPath = ""
	scoreResume = ""
	scoreJob = ""
	scoreJobURL = ""
	scoreDictionary = ""
	scoreOutputFile = ""
	scoreVerbose = false
}

const testResumeText = `Jane Doe is an experienced engineer skilled in React and Node.js.
She has 6 years of experience building web services.
Education: Bachelor of Science in Computer Science.`

const testJobText = `Required: react and node. Nice to have: aws.
Senior role with 5+ years of experience. Bachelor degree required.`

func writeScoreInputs(t *testing.T) (resumePath, jobPath, outputPath string) {
	t.Helper()
	tmpDir := t.TempDir()
	resumePath = filepath.Join(tmpDir, "resume.txt")
	jobPath = filepath.Join(tmpDir, "job.txt")
	outputPath = filepath.Join(tmpDir, "score.json")
	require.NoError(t, os.WriteFile(resumePath, []byte(testResumeText), 0644))
	require.NoError(t, os.WriteFile(jobPath, []byte(testJobText), 0644))
	return resumePath, jobPath, outputPath
}

func TestRunScore(t *testing.T) {
	resetScoreFlags()
	resumePath, jobPath, outputPath := writeScoreInputs(t)

	scoreResume = resumePath
	scoreJob = jobPath
	scoreOutputFile = outputPath

	require.NoError(t, runScore(nil, nil))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var rec types.ScoreRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.Equal(t, 100, rec.ExperienceScore)
	assert.Equal(t, 100, rec.EducationScore)
	assert.Contains(t, rec.MatchedSkills, "react")
	assert.Contains(t, rec.MatchedSkills, "node")
	assert.Contains(t, rec.MissingSkills, "aws")
	assert.GreaterOrEqual(t, rec.FinalScore, 0)
	assert.LessOrEqual(t, rec.FinalScore, 100)
}

func TestRunScore_MissingResume(t *testing.T) {
	resetScoreFlags()
	_, jobPath, _ := writeScoreInputs(t)
	scoreJob = jobPath

	err := runScore(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume file is required")
}

func TestRunScore_MissingJob(t *testing.T) {
	resetScoreFlags()
	resumePath, _, _ := writeScoreInputs(t)
	scoreResume = resumePath

	err := runScore(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must provide either --job or --job-url")
}

func TestRunScore_JobAndURLMutuallyExclusive(t *testing.T) {
	resetScoreFlags()
	resumePath, jobPath, _ := writeScoreInputs(t)

	scoreResume = resumePath
	scoreJob = jobPath
	scoreJobURL = "https://example.com/job"

	err := runScore(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunScore_ConfigFile(t *testing.T) {
	resetScoreFlags()
	resumePath, jobPath, outputPath := writeScoreInputs(t)

	configPath := filepath.Join(t.TempDir(), "config.json")
	cfgJSON, err := json.Marshal(map[string]string{
		"resume": resumePath,
		"job":    jobPath,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, []byte(cfgJSON), 0644))

	scoreConfigPath = configPath
	scoreOutputFile = outputPath

	require.NoError(t, runScore(nil, nil))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var rec types.ScoreRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.NotZero(t, rec.FinalScore)
}
