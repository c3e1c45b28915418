// Package sentiment scores recent headlines about a company with an LLM.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"scout/internal/config"
	"scout/internal/domain"
)

// MaxHeadlines caps how many headlines go into one prompt.
const MaxHeadlines = 10

// ErrNoScore is returned when the model reply carries no score line.
var ErrNoScore = errors.New("sentiment: no score in reply")

// ErrNoHeadlines is returned when there is nothing to analyze.
var ErrNoHeadlines = errors.New("sentiment: no headlines")

// Generator produces a completion for a system prompt and user message.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Analyzer turns headlines into a domain.Sentiment.
type Analyzer struct {
	gen Generator
	log *slog.Logger
}

// NewAnalyzer wraps any Generator.
func NewAnalyzer(gen Generator, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{gen: gen, log: log.With("component", "sentiment")}
}

// NewGenAIAnalyzer creates an Analyzer backed by the Gemini API.
func NewGenAIAnalyzer(ctx context.Context, cfg config.GenAI, log *slog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return NewAnalyzer(&genaiGenerator{client: client, model: model}, log), nil
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	return resp.Text(), nil
}

// Prompt is the system instruction for company.
func Prompt(company string) string {
	return fmt.Sprintf("Analyze the sentiment of the following news headlines about %s's stock. "+
		"Provide a short summary of the sentiment and calculate the average sentiment score on a scale "+
		"of 0 (negative) to 10 (positive). Return only the summary in bullet points with specific yet short & concise "+
		"news examples and the average sentiment score as a number. Output should be in the exact format of: "+
		"Average Sentiment Score: _/10. Then the summary.", company)
}

// Analyze scores up to MaxHeadlines headlines about company.
func (a *Analyzer) Analyze(ctx context.Context, company string, headlines []string) (domain.Sentiment, error) {
	var hs []string
	for _, h := range headlines {
		if h = strings.TrimSpace(h); h != "" {
			hs = append(hs, h)
		}
		if len(hs) == MaxHeadlines {
			break
		}
	}
	if len(hs) == 0 {
		return domain.Sentiment{}, ErrNoHeadlines
	}

	reply, err := a.gen.Generate(ctx, Prompt(company), strings.Join(hs, ", "))
	if err != nil {
		return domain.Sentiment{}, err
	}
	s, err := ParseResult(reply)
	if err != nil {
		a.log.Warn("unparseable sentiment reply", "company", company, "reply", reply)
		return s, err
	}
	a.log.Debug("sentiment scored", "company", company, "score", s.Score, "bullets", len(s.Bullets))
	return s, nil
}

var scoreRe = regexp.MustCompile(`(?i)average\s+sentiment\s+score\s*:?\**\s*\**\s*([0-9]+(?:\.[0-9]+)?)\s*(?:/|out of)\s*10`)

var bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

// ParseResult extracts the score and bullet summary from a model reply. The
// score is clamped to [0, 10].
func ParseResult(reply string) (domain.Sentiment, error) {
	s := domain.Sentiment{Raw: strings.TrimSpace(reply)}

	m := scoreRe.FindStringSubmatch(reply)
	if m == nil {
		return s, ErrNoScore
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrNoScore, err)
	}
	s.Score = min(max(score, 0), 10)

	for _, line := range strings.Split(reply, "\n") {
		if !bulletRe.MatchString(line) {
			continue
		}
		b := bulletRe.ReplaceAllString(line, "")
		b = strings.TrimSpace(strings.ReplaceAll(b, "**", ""))
		if b != "" && !scoreRe.MatchString(b) {
			s.Bullets = append(s.Bullets, b)
		}
	}
	return s, nil
}
