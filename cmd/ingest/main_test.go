package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/candidate-intake/internal/models"
	"alfredoptarigan/candidate-intake/internal/services"
)

type recordingIntake struct {
	submission services.Submission
	err        error
}

func (r *recordingIntake) Process(ctx context.Context, submission services.Submission) (*models.UploadResponse, error) {
	r.submission = submission
	if r.err != nil {
		return nil, r.err
	}
	return &models.UploadResponse{
		Success:    true,
		Profile:    models.CandidateProfile{Email: submission.Email, Name: submission.Name, Text: "resume text"},
		Evaluation: "Looks good.",
	}, nil
}

func (r *recordingIntake) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	return nil, nil
}

func factoryFor(intake services.IntakeService) intakeFactory {
	return func(ctx context.Context) (services.IntakeService, func(), error) {
		return intake, func() {}, nil
	}
}

func writeResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 resume"), 0o600))
	return path
}

func TestIngest_PrintsResult(t *testing.T) {
	intake := &recordingIntake{}
	cmd := newRootCmd(factoryFor(intake))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", writeResume(t), "--email", "jane@example.com", "--name", "Jane Doe", "--skills", "Go"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "jane@example.com", intake.submission.Email)
	assert.Equal(t, "Go", intake.submission.Skills)
	assert.Equal(t, []byte("%PDF-1.4 resume"), intake.submission.Resume)

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Looks good.", resp.Evaluation)
}

func TestIngest_RequiresFlags(t *testing.T) {
	cmd := newRootCmd(factoryFor(&recordingIntake{}))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", "resume.pdf"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestIngest_MissingFile(t *testing.T) {
	cmd := newRootCmd(factoryFor(&recordingIntake{}))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", filepath.Join(t.TempDir(), "missing.pdf"), "--email", "a@b.c"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read résumé")
}

func TestIngest_PipelineError(t *testing.T) {
	intake := &recordingIntake{err: services.NewIntakeError(services.ErrExtraction, "Failed to extract text from PDF.", errors.New("bad xref"))}
	cmd := newRootCmd(factoryFor(intake))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", writeResume(t), "--email", "a@b.c"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrExtraction)
	assert.Equal(t, "Failed to extract text from PDF.: bad xref", err.Error())
	assert.Equal(t, 1, strings.Count(err.Error(), "Failed to extract text from PDF."))
}
