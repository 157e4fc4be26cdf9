// Package genai wraps the external text-generation service behind a small
// interface. Calls carry a bounded timeout; on network failure the generator
// degrades to a template instead of surfacing the error, the same way the
// client degrades logins.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const requestTimeout = 20 * time.Second

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// CoverLetterRequest describes the job and candidate to write for.
type CoverLetterRequest struct {
	JobDescription string   `json:"job_description"`
	CandidateName  string   `json:"candidate_name"`
	Experience     string   `json:"experience"`
	Skills         []string `json:"skills"`
	Tone           string   `json:"tone"`
}

// CoverLetterResult is the generated letter plus guidance for tailoring it.
type CoverLetterResult struct {
	Content             string   `json:"content"`
	Tone                string   `json:"tone"`
	KeyPoints           []string `json:"keyPoints"`
	PersonalizationTips []string `json:"personalizationTips"`
	Fallback            bool     `json:"fallback"`
}

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces cover letters through the generative-language API.
type Generator struct {
	client completionClient
	model  string
	logger *slog.Logger
}

// NewGenerator creates a Generator. An empty apiKey produces a generator that
// always answers with the template fallback.
func NewGenerator(apiKey string, logger *slog.Logger) *Generator {
	g := &Generator{model: openai.GPT4oMini, logger: logger}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// GenerateCoverLetter asks the model for a tailored letter. Any failure
// (missing key, timeout, malformed model output) yields the template letter
// with Fallback set, never an error to the caller.
func (g *Generator) GenerateCoverLetter(ctx context.Context, req CoverLetterRequest) CoverLetterResult {
	if req.Tone == "" {
		req.Tone = "professional"
	}

	if g.client == nil {
		return g.fallback(req)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		g.logger.Warn("cover letter generation failed, using template", "error", err)
		return g.fallback(req)
	}

	if len(resp.Choices) == 0 {
		return g.fallback(req)
	}

	raw := jsonBlock.FindString(resp.Choices[0].Message.Content)
	if raw == "" {
		return g.fallback(req)
	}

	var result CoverLetterResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil || result.Content == "" {
		g.logger.Warn("cover letter response unparseable, using template")
		return g.fallback(req)
	}

	if result.Tone == "" {
		result.Tone = req.Tone
	}
	return result
}

func buildPrompt(req CoverLetterRequest) string {
	name := req.CandidateName
	if name == "" {
		name = "Candidate"
	}
	skills := strings.Join(req.Skills, ", ")
	if skills == "" {
		skills = "Various technical skills"
	}

	return fmt.Sprintf(`Generate a personalized cover letter for this job application:

Job Description:
%s

Candidate:
Name: %s
Experience: %s
Skills: %s

Tone: %s

Respond in JSON: {"content": "...", "tone": "...", "keyPoints": [...], "personalizationTips": [...]}
Make it engaging, specific, and tailored to the role.`,
		req.JobDescription, name, req.Experience, skills, req.Tone)
}

func (g *Generator) fallback(req CoverLetterRequest) CoverLetterResult {
	name := req.CandidateName
	if name == "" {
		name = "Candidate"
	}

	content := fmt.Sprintf("Dear Hiring Manager,\n\n"+
		"I am writing to express my strong interest in the position at your company. "+
		"With my background in technology and passion for innovation, I believe I would be a valuable addition to your team.\n\n"+
		"My experience includes working with modern technologies and delivering high-quality solutions. "+
		"I am excited about the opportunity to contribute to your organization's success.\n\n"+
		"Thank you for considering my application.\n\nSincerely,\n%s", name)

	return CoverLetterResult{
		Content:             content,
		Tone:                req.Tone,
		KeyPoints:           []string{"Relevant experience", "Technical skills", "Enthusiasm for role"},
		PersonalizationTips: []string{"Research company culture", "Mention specific projects", "Quantify achievements"},
		Fallback:            true,
	}
}
