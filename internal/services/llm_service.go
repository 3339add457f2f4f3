package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrLLMDisabled is returned by NewLLMService when no API key is configured.
var ErrLLMDisabled = errors.New("job extraction disabled: GEMINI_API_KEY is empty")

// maxPostingBytes caps how much of a posting is sent to the model.
const maxPostingBytes = 20000

const jobExtractionPrompt = `
You are a Job Data Extraction Agent. Analyze the raw HTML/text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists, and advertisements.
2. Extract only the fields below.
3. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "companyName": "Name of the company",
    "salary": 120000,
    "equity": 0.01,
    "location": "Job location or 'Remote'",
    "description": "Short summary of responsibilities and requirements, without HTML tags"
}

salary is a yearly integer amount; equity is a fraction between 0 and 1.
If a piece of information is missing, set the value to null. Do not guess.

### RAW CONTENT:
%s
`

type LLMService struct {
	Client llms.Model
}

// NewLLMService creates the Gemini client.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, ErrLLMDisabled
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

// ExtractJobDetails asks the model for a JobDraft describing rawHTML.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*dtos.JobDraft, error) {
	rawHTML = truncateUTF8(rawHTML, maxPostingBytes)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extract job details: %w", err)
	}

	var draft dtos.JobDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		return nil, fmt.Errorf("parse extracted job: %w", err)
	}
	return &draft, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
