package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/services"
)

const testDimension = 768

type stubParser struct {
	text  string
	err   error
	calls int
}

func (s *stubParser) ExtractText(data []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubGemini struct {
	embedding  []float32
	embedErr   error
	evaluation string
	evalOK     bool
	evalErr    error

	embedCalls int
	evalCalls  int
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.embedCalls++
	return s.embedding, s.embedErr
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string) (string, bool, error) {
	s.evalCalls++
	return s.evaluation, s.evalOK, s.evalErr
}

type stubStore struct {
	upsertErr error
	matches   []services.CandidateMatch
	searchErr error

	records     map[string]services.CandidateRecord
	upsertCalls int
	searchCalls int
}

func (s *stubStore) EnsureCollection(ctx context.Context) error { return nil }

func (s *stubStore) UpsertCandidate(ctx context.Context, record services.CandidateRecord) error {
	s.upsertCalls++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.records == nil {
		s.records = make(map[string]services.CandidateRecord)
	}
	s.records[services.CandidatePointID(record.Email)] = record
	return nil
}

func (s *stubStore) SearchCandidates(ctx context.Context, queryEmbedding []float32, limit int) ([]services.CandidateMatch, error) {
	s.searchCalls++
	return s.matches, s.searchErr
}

func (s *stubStore) Close() error { return nil }

type testDeps struct {
	parser *stubParser
	gemini *stubGemini
	store  *stubStore
}

func (d *testDeps) externalCalls() int {
	return d.parser.calls + d.gemini.embedCalls + d.gemini.evalCalls + d.store.upsertCalls + d.store.searchCalls
}

func newTestDeps() *testDeps {
	return &testDeps{
		parser: &stubParser{text: "Jane Doe\nSenior Go engineer"},
		gemini: &stubGemini{
			embedding:  make([]float32, testDimension),
			evaluation: "Strong backend candidate.",
			evalOK:     true,
		},
		store: &stubStore{},
	}
}

func newTestApp(deps *testDeps) *fiber.App {
	intake := services.NewIntakeService(deps.parser, deps.gemini, deps.store, testDimension, zap.NewNop())

	app := fiber.New()
	app.All("/api/upload", NewUploadHandler(intake, zap.NewNop()).HandleUpload)
	app.Get("/api/candidates/search", NewSearchHandler(intake, zap.NewNop()).HandleSearch)
	return app
}

type uploadFile struct {
	field    string
	filename string
	content  []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...uploadFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func profileFields() map[string]string {
	return map[string]string{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"linkedin":   "https://linkedin.com/in/janedoe",
		"skills":     "Go, Postgres, Kubernetes",
		"experience": "Six years building backend services",
	}
}

func resumeFile() uploadFile {
	return uploadFile{field: "resume", filename: "resume.pdf", content: []byte("%PDF-1.4 test")}
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
