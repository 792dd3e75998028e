package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

// The fallback texts below are product copy, not placeholders: users see them
// verbatim whenever generation is unavailable, and both the no-key and the
// all-providers-failed paths must serve the exact same strings.
const FallbackAffirmation = "You're building incredible momentum with your habits. Every small step you take today is shaping the powerful, disciplined person you're becoming. Trust the process and celebrate your consistency! 🌟"

var FallbackPrompts = []string{
	"What are you grateful for today?",
	"What challenged you the most today?",
	"What's your focus for tomorrow?",
}

const (
	fallbackInsightMindset  = "You're showing great self-awareness in your reflection."
	fallbackInsightProgress = "Your commitment to growth is inspiring."
	fallbackEncouragement   = "Keep up the great work on your journey!"
)

// TextGenerator is the outbound port to the LLM provider chain.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// AffirmationService produces the journal's AI texts. It never returns an
// error to its caller: any generation failure degrades to the fixed fallback
// copy above.
type AffirmationService struct {
	gen TextGenerator
}

func NewAffirmationService(gen TextGenerator) *AffirmationService {
	return &AffirmationService{
		gen: gen,
	}
}

type AffirmationInput struct {
	Mood            domain.Mood
	CompletedHabits int
	TotalHabits     int
	CurrentStreak   int
}

func (s *AffirmationService) DailyAffirmation(ctx context.Context, input AffirmationInput) string {
	prompt := fmt.Sprintf(`Generate a personalized daily affirmation for someone working on a 66-day habit reset journey.

Context:
- Current mood: %s
- Habits completed today: %d/%d
- Current streak: %d days

The affirmation should be:
- Encouraging and motivational
- Specific to their current progress
- Between 2-3 sentences
- Focused on growth mindset and consistency
- Include relevant emoji

Respond with just the affirmation text.`, input.Mood, input.CompletedHabits, input.TotalHabits, input.CurrentStreak)

	content, err := s.gen.Complete(ctx, prompt, 150)
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil {
			log.WithError(err).Warn("Affirmation generation failed, serving fallback")
		}
		return FallbackAffirmation
	}

	return strings.TrimSpace(content)
}

var numberedLine = regexp.MustCompile(`^\d+\.`)

// JournalPrompts returns exactly three reflection prompts for the day.
func (s *AffirmationService) JournalPrompts(ctx context.Context, mood domain.Mood, currentDay int) []string {
	prompt := fmt.Sprintf(`Generate 3 personalized journal prompts for someone on day %d of their 66-day habit journey. Their current mood is: %s. Each prompt should be insightful and help them reflect on their progress.

Respond with exactly 3 prompts, one per line, no numbering or formatting. Example:
What are you grateful for today?
What challenged you the most today?
What's your focus for tomorrow?`, currentDay, mood)

	content, err := s.gen.Complete(ctx, prompt, 200)
	if err != nil {
		log.WithError(err).Warn("Prompt generation failed, serving fallbacks")
		return FallbackPrompts
	}

	var prompts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || numberedLine.MatchString(line) {
			continue
		}
		prompts = append(prompts, line)
		if len(prompts) == 3 {
			break
		}
	}

	if len(prompts) < 3 {
		return FallbackPrompts
	}
	return prompts
}

// Analysis is the structured read of a journal entry.
type Analysis struct {
	Sentiment     string   `json:"sentiment"`
	Insights      []string `json:"insights"`
	Encouragement string   `json:"encouragement"`
}

func neutralAnalysis() *Analysis {
	return &Analysis{
		Sentiment:     "neutral",
		Insights:      []string{fallbackInsightMindset, fallbackInsightProgress},
		Encouragement: fallbackEncouragement,
	}
}

// AnalyzeEntry extracts sentiment, two insights and an encouragement from a
// journal entry. Missing or malformed fields fall back individually.
func (s *AffirmationService) AnalyzeEntry(ctx context.Context, content string) *Analysis {
	prompt := fmt.Sprintf(`Analyze this journal entry and provide insights: %q

Please analyze the sentiment (positive/neutral/negative), provide 2 insights about the person's mindset or progress, and give an encouraging message.

Respond in this format:
Sentiment: [positive/neutral/negative]
Insight 1: [insight about their mindset]
Insight 2: [insight about their progress]
Encouragement: [encouraging message]`, content)

	response, err := s.gen.Complete(ctx, prompt, 300)
	if err != nil || strings.TrimSpace(response) == "" {
		if err != nil {
			log.WithError(err).Warn("Journal analysis failed, serving fallback")
		}
		return neutralAnalysis()
	}

	analysis := neutralAnalysis()
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Sentiment:"):
			sentiment := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Sentiment:")))
			if sentiment == "positive" || sentiment == "neutral" || sentiment == "negative" {
				analysis.Sentiment = sentiment
			}
		case strings.HasPrefix(line, "Insight 1:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Insight 1:")); v != "" {
				analysis.Insights[0] = v
			}
		case strings.HasPrefix(line, "Insight 2:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Insight 2:")); v != "" {
				analysis.Insights[1] = v
			}
		case strings.HasPrefix(line, "Encouragement:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Encouragement:")); v != "" {
				analysis.Encouragement = v
			}
		}
	}

	return analysis
}
