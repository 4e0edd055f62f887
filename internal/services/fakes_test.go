package services

import (
	"context"
	"sync"
)

type fakePDFParser struct {
	text  string
	err   error
	calls int
}

func (f *fakePDFParser) ExtractText(data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeGemini struct {
	mu sync.Mutex

	embedding []float32
	embedErr  error
	text      string
	textOK    bool
	textErr   error

	embedCalls []string
	prompts    []string
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls = append(f.embedCalls, text)
	return f.embedding, f.embedErr
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.textOK, f.textErr
}

type fakeQdrant struct {
	mu sync.Mutex

	upsertErr error
	searchErr error
	matches   []CandidateMatch

	records     map[string]CandidateRecord
	upsertCalls int
	searchLimit int
}

func (f *fakeQdrant) EnsureCollection(ctx context.Context) error { return nil }

func (f *fakeQdrant) UpsertCandidate(ctx context.Context, record CandidateRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.records == nil {
		f.records = make(map[string]CandidateRecord)
	}
	f.records[CandidatePointID(record.Email)] = record
	return nil
}

func (f *fakeQdrant) SearchCandidates(ctx context.Context, queryEmbedding []float32, limit int) ([]CandidateMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchLimit = limit
	return f.matches, f.searchErr
}

func (f *fakeQdrant) Close() error { return nil }

func vectorOf(size int) []float32 {
	v := make([]float32, size)
	for i := range v {
		v[i] = float32(i) / float32(size)
	}
	return v
}
