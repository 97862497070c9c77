package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/db"
	"github.com/jonathan/ats-analyzer/internal/skills"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*db.Resume
	jobs    map[uuid.UUID]*db.Job
	scores  map[uuid.UUID]*types.ScoreRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes: make(map[uuid.UUID]*db.Resume),
		jobs:    make(map[uuid.UUID]*db.Job),
		scores:  make(map[uuid.UUID]*types.ScoreRecord),
	}
}

func (f *fakeStore) CreateResume(_ context.Context, candidateName, parsedText string, skills, education []string, experience string) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resume := &db.Resume{
		ID:                  uuid.New(),
		CandidateName:       candidateName,
		ParsedText:          parsedText,
		ExtractedSkills:     skills,
		ExtractedEducation:  education,
		ExtractedExperience: experience,
		Status:              db.ResumeStatusUploaded,
	}
	f.resumes[resume.ID] = resume
	return resume, nil
}

func (f *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumes[id], nil
}

func (f *fakeStore) ListResumeIDs(_ context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(f.resumes))
	for id := range f.resumes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) MarkResumeScored(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resume, ok := f.resumes[id]; ok {
		resume.Status = db.ResumeStatusScored
	}
	return nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.resumes, id)
	delete(f.scores, id)
	return nil
}

func (f *fakeStore) CreateJob(_ context.Context, title, description string, jobSkills []types.Skill, experienceLevel string) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := &db.Job{
		ID:              uuid.New(),
		Title:           title,
		Description:     description,
		Skills:          jobSkills,
		ExperienceLevel: experienceLevel,
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeStore) ListJobs(_ context.Context) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := make([]db.Job, 0, len(f.jobs))
	for _, job := range f.jobs {
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func (f *fakeStore) DeleteJob(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, id)
	return nil
}

func (f *fakeStore) SaveOrReplace(_ context.Context, rec *types.ScoreRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *rec
	f.scores[rec.ResumeID] = &copied
	return nil
}

func (f *fakeStore) GetScoreByResumeID(_ context.Context, resumeID uuid.UUID) (*types.ScoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scores[resumeID], nil
}

func (f *fakeStore) JobRankings(_ context.Context, jobID uuid.UUID, filters db.RankingFilters) ([]db.RankingEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []db.RankingEntry
	for _, rec := range f.scores {
		if rec.JobID == nil || *rec.JobID != jobID {
			continue
		}
		if filters.MinScore != nil && rec.FinalScore < *filters.MinScore {
			continue
		}
		if filters.MaxScore != nil && rec.FinalScore > *filters.MaxScore {
			continue
		}
		if len(filters.Skills) > 0 && !anySkillMatches(rec.MatchedSkills, filters.Skills) {
			continue
		}
		entry := db.RankingEntry{
			ResumeID:        rec.ResumeID,
			FinalScore:      rec.FinalScore,
			SkillScore:      rec.SkillScore,
			ExperienceScore: rec.ExperienceScore,
			EducationScore:  rec.EducationScore,
			MatchedSkills:   rec.MatchedSkills,
			MissingSkills:   rec.MissingSkills,
		}
		if resume, ok := f.resumes[rec.ResumeID]; ok {
			entry.CandidateName = resume.CandidateName
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func anySkillMatches(matched, wanted []string) bool {
	for _, want := range wanted {
		for _, have := range matched {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return newServer(store, skills.Default(), 0), store
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

const sampleResumeText = `Jane is an experienced engineer skilled in React and Node.js.
She has 6 years of experience building web services.
Education: Bachelor of Science in Computer Science.`

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doRequest(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[map[string]string](t, rr)
	assert.Equal(t, "ok", body["status"])
}

func TestHandleIngestResume(t *testing.T) {
	s, store := newTestServer(t)

	rr := doRequest(t, s, "POST", "/resumes", types.IngestResumeRequest{
		CandidateName: "Jane Doe",
		Text:          sampleResumeText,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeBody[ResumeResponse](t, rr)
	assert.Equal(t, "Jane Doe", resp.CandidateName)
	assert.Equal(t, db.ResumeStatusUploaded, resp.Status)
	assert.Contains(t, resp.ExtractedSkills, "react")
	assert.Contains(t, resp.ExtractedSkills, "node")
	assert.NotEmpty(t, resp.ExtractedEducation)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored, err := store.GetResume(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe", stored.CandidateName)
}

func TestHandleIngestResumeValidation(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		req  types.IngestResumeRequest
	}{
		{"missing name", types.IngestResumeRequest{Text: sampleResumeText}},
		{"missing text", types.IngestResumeRequest{CandidateName: "Jane"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, "POST", "/resumes", tt.req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandleGetResumeNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "GET", "/resumes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, "GET", "/resumes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleDeleteResume(t *testing.T) {
	s, store := newTestServer(t)
	resume, err := store.CreateResume(context.Background(), "Jane", "text", nil, nil, "")
	require.NoError(t, err)

	rr := doRequest(t, s, "DELETE", "/resumes/"+resume.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, s, "DELETE", "/resumes/"+resume.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleCreateJobWithExplicitSkills(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "POST", "/jobs", types.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "We are looking for a backend engineer to join our platform team.",
		Skills: []types.Skill{
			{Name: "golang", Weight: 3},
			{Name: "postgresql", Weight: 2},
		},
		ExperienceLevel: types.LevelSenior,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeBody[JobResponse](t, rr)
	assert.Equal(t, "Backend Engineer", resp.Title)
	assert.Equal(t, types.LevelSenior, resp.ExperienceLevel)
	require.Len(t, resp.Skills, 2)
	assert.Equal(t, "golang", resp.Skills[0].Name)
}

func TestHandleCreateJobExtractsSkills(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "POST", "/jobs", types.CreateJobRequest{
		Title:       "Frontend Engineer",
		Description: "Required: react and javascript. Senior engineer with 5+ years of experience.",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeBody[JobResponse](t, rr)
	assert.Equal(t, types.LevelSenior, resp.ExperienceLevel)

	var names []string
	for _, skill := range resp.Skills {
		names = append(names, skill.Name)
	}
	assert.Contains(t, names, "react")
	assert.Contains(t, names, "javascript")
}

func TestHandleCreateJobValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "POST", "/jobs", types.CreateJobRequest{
		Title:       "Engineer",
		Description: "too short",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, "POST", "/jobs", types.CreateJobRequest{
		Title:           "Engineer",
		Description:     "A description that is certainly long enough to pass validation.",
		ExperienceLevel: "wizard",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleJobRequirements(t *testing.T) {
	s, store := newTestServer(t)
	job, err := store.CreateJob(context.Background(), "Engineer",
		"Required: python and docker. Senior role with 5+ years of experience. Master degree required.",
		nil, "")
	require.NoError(t, err)

	rr := doRequest(t, s, "GET", "/jobs/"+job.ID.String()+"/requirements", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	req := decodeBody[types.JobRequirements](t, rr)
	assert.Contains(t, req.Skills, "python")
	assert.Contains(t, req.Skills, "docker")
	assert.Equal(t, types.LevelSenior, req.ExperienceLevel)
	assert.Equal(t, types.EducationMaster, req.Education)
}

func TestHandleScoreResumeAgainstJob(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	resume, err := store.CreateResume(ctx, "Jane", sampleResumeText,
		[]string{"react", "node"}, []string{"Bachelor of Science in Computer Science"}, "6 years of experience")
	require.NoError(t, err)
	job, err := store.CreateJob(ctx, "Engineer", "Frontend role with react and node and aws.",
		[]types.Skill{{Name: "react", Weight: 1}, {Name: "node", Weight: 1}, {Name: "aws", Weight: 2}},
		types.LevelSenior)
	require.NoError(t, err)

	rr := doRequest(t, s, "POST", "/resumes/"+resume.ID.String()+"/score",
		types.ScoreResumeRequest{JobID: &job.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	rec := decodeBody[types.ScoreRecord](t, rr)
	assert.Equal(t, resume.ID, rec.ResumeID)
	require.NotNil(t, rec.JobID)
	assert.Equal(t, job.ID, *rec.JobID)
	assert.Equal(t, 50, rec.SkillScore)
	assert.Equal(t, 100, rec.ExperienceScore)
	assert.ElementsMatch(t, []string{"react", "node"}, rec.MatchedSkills)
	assert.ElementsMatch(t, []string{"aws"}, rec.MissingSkills)

	stored, err := store.GetResume(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusScored, stored.Status)
}

func TestHandleScoreResumeGeneral(t *testing.T) {
	s, store := newTestServer(t)
	resume, err := store.CreateResume(context.Background(), "Jane", sampleResumeText,
		[]string{"react", "node"}, []string{"Bachelor of Science"}, "6 years of experience")
	require.NoError(t, err)

	// No body means general scoring.
	rr := doRequest(t, s, "POST", "/resumes/"+resume.ID.String()+"/score", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rec := decodeBody[types.ScoreRecord](t, rr)
	assert.Nil(t, rec.JobID)
	assert.Equal(t, 50, rec.SkillScore)
	assert.Equal(t, 85, rec.ExperienceScore)
	assert.Equal(t, 90, rec.EducationScore)
}

func TestHandleScoreResumeNotFound(t *testing.T) {
	s, store := newTestServer(t)
	job, err := store.CreateJob(context.Background(), "Engineer",
		"A role description long enough to store.", nil, "")
	require.NoError(t, err)

	rr := doRequest(t, s, "POST", "/resumes/"+uuid.NewString()+"/score",
		types.ScoreResumeRequest{JobID: &job.ID})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleScoreDescription(t *testing.T) {
	s, store := newTestServer(t)
	resume, err := store.CreateResume(context.Background(), "Jane", sampleResumeText,
		[]string{"react", "node"}, []string{"Bachelor of Science"}, "6 years of experience")
	require.NoError(t, err)

	rr := doRequest(t, s, "POST", "/resumes/"+resume.ID.String()+"/score/description",
		types.ScoreDescriptionRequest{
			Description: "Required: react. Senior role with 5+ years of experience. Bachelor degree required.",
		})
	require.Equal(t, http.StatusOK, rr.Code)

	rec := decodeBody[types.ScoreRecord](t, rr)
	assert.Nil(t, rec.JobID)
	assert.Equal(t, 100, rec.ExperienceScore)
	assert.Equal(t, 100, rec.EducationScore)

	rr = doRequest(t, s, "POST", "/resumes/"+resume.ID.String()+"/score/description",
		types.ScoreDescriptionRequest{Description: "too short"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetScore(t *testing.T) {
	s, store := newTestServer(t)
	resume, err := store.CreateResume(context.Background(), "Jane", sampleResumeText,
		[]string{"react"}, nil, "")
	require.NoError(t, err)

	rr := doRequest(t, s, "GET", "/resumes/"+resume.ID.String()+"/score", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, "POST", "/resumes/"+resume.ID.String()+"/score", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, s, "GET", "/resumes/"+resume.ID.String()+"/score", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rec := decodeBody[types.ScoreRecord](t, rr)
	assert.Equal(t, resume.ID, rec.ResumeID)
}

func TestHandleRescoreJob(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, "Engineer", "Frontend role built around react.",
		[]types.Skill{{Name: "react", Weight: 1}}, types.LevelMid)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := store.CreateResume(ctx, fmt.Sprintf("Candidate %d", i), sampleResumeText,
			[]string{"react"}, nil, "6 years of experience")
		require.NoError(t, err)
	}

	rr := doRequest(t, s, "POST", "/jobs/"+job.ID.String()+"/rescore", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[map[string]int](t, rr)
	assert.Equal(t, 3, body["rescored"])

	rr = doRequest(t, s, "POST", "/jobs/"+uuid.NewString()+"/rescore", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleRankings(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, "Engineer", "Frontend role built around react and aws.",
		[]types.Skill{{Name: "react", Weight: 1}, {Name: "aws", Weight: 1}}, types.LevelMid)
	require.NoError(t, err)

	strong, err := store.CreateResume(ctx, "Strong", sampleResumeText,
		[]string{"react", "aws"}, []string{"Bachelor of Science"}, "6 years of experience")
	require.NoError(t, err)
	weak, err := store.CreateResume(ctx, "Weak", "A short resume.",
		[]string{"react"}, nil, "")
	require.NoError(t, err)

	for _, id := range []uuid.UUID{strong.ID, weak.ID} {
		rr := doRequest(t, s, "POST", "/resumes/"+id.String()+"/score",
			types.ScoreResumeRequest{JobID: &job.ID})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(t, s, "GET", "/rankings/"+job.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		JobID    string            `json:"job_id"`
		Rankings []db.RankingEntry `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Rankings, 2)
	assert.Equal(t, 1, body.Rankings[0].Rank)
	assert.Equal(t, "Strong", body.Rankings[0].CandidateName)
	assert.Greater(t, body.Rankings[0].FinalScore, body.Rankings[1].FinalScore)

	// Skill filter keeps only candidates whose match list contains the term.
	rr = doRequest(t, s, "GET", "/rankings/"+job.ID.String()+"?skills=aws", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Rankings, 1)
	assert.Equal(t, "Strong", body.Rankings[0].CandidateName)
	assert.Equal(t, 1, body.Rankings[0].Rank)
}

func TestHandleRankingsValidation(t *testing.T) {
	s, store := newTestServer(t)
	job, err := store.CreateJob(context.Background(), "Engineer",
		"A role description long enough to store.", nil, "")
	require.NoError(t, err)

	rr := doRequest(t, s, "GET", "/rankings/"+job.ID.String()+"?min_score=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, "GET", "/rankings/"+job.ID.String()+"?max_score=150", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, "GET", "/rankings/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest("OPTIONS", "/resumes", nil)
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
