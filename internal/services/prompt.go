package services

import (
	"strings"
)

const evaluationPromptPrefix = "Evaluate this candidate:\n"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCandidateEvaluationPrompt wraps the résumé text in the evaluation instruction.
func (pb *PromptBuilder) BuildCandidateEvaluationPrompt(resumeText string) string {
	return evaluationPromptPrefix + resumeText
}

// BuildSearchQuery normalizes free-text search input before it is embedded.
func (pb *PromptBuilder) BuildSearchQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
