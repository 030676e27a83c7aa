package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"registration-service/internal/models"
)

var ErrEmptyQuestion = errors.New("question cannot be empty")

// FallbackAnswerer handles questions no rule matches, e.g. *gemini.FarmingAdvisor.
type FallbackAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

type IAdvisorService interface {
	Ask(ctx context.Context, question string) (models.AdvisorAnswer, error)
}

type advisorRule struct {
	topic  string
	match  func(q question) bool
	answer string
}

// question is a lower-cased question plus its words, so greetings can match
// whole words while topic keywords match anywhere ("planting" has "plant").
type question struct {
	text  string
	words map[string]bool
}

func newQuestion(raw string) question {
	text := strings.ToLower(raw)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return question{text: text, words: words}
}

func (q question) has(keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(q.text, k) {
			return true
		}
	}
	return false
}

func (q question) hasWord(words ...string) bool {
	for _, w := range words {
		if q.words[w] {
			return true
		}
	}
	return false
}

// advisorRules are checked in order; the first match wins.
var advisorRules = []advisorRule{
	{"wheat_planting", func(q question) bool { return q.has("wheat") && q.has("plant") }, answerWheatPlanting},
	{"organic_pest_control", func(q question) bool { return q.has("pest") && q.has("organic", "control") }, answerOrganicPestControl},
	{"tomato_fertilizer", func(q question) bool { return q.has("fertilizer") && q.has("tomato") }, answerTomatoFertilizer},
	{"crop_rotation", func(q question) bool { return q.has("crop rotation", "rotation benefit") }, answerCropRotation},
	{"weather_impact", func(q question) bool { return q.has("weather") && q.has("crop") }, answerWeatherImpact},
	{"soil_ph", func(q question) bool { return q.has("soil") && q.has("ph") }, answerSoilPH},
	{"npk", func(q question) bool { return q.has("nitrogen", "phosphorus", "potassium") }, answerNPK},
	{"organic_farming", func(q question) bool { return q.has("organic") && q.has("farming") }, answerOrganicFarming},
	{"irrigation", func(q question) bool { return q.has("water", "irrigation") }, answerIrrigation},
	{"help", func(q question) bool { return q.has("help", "assist") }, answerHelp},
	{"greeting", func(q question) bool { return q.hasWord("hello", "hi", "hey") }, answerGreeting},
	{"thanks", func(q question) bool { return q.has("thanks", "thank you") }, answerThanks},
}

type AdvisorService struct {
	fallback FallbackAnswerer
}

// NewAdvisorService takes an optional fallback; nil answers unmatched
// questions with the default reply.
func NewAdvisorService(fallback FallbackAnswerer) IAdvisorService {
	return &AdvisorService{fallback: fallback}
}

func (s *AdvisorService) Ask(ctx context.Context, raw string) (models.AdvisorAnswer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.AdvisorAnswer{}, ErrEmptyQuestion
	}

	q := newQuestion(trimmed)
	for _, rule := range advisorRules {
		if rule.match(q) {
			return models.AdvisorAnswer{
				Question: trimmed,
				Answer:   rule.answer,
				Topic:    rule.topic,
				Source:   models.AnswerFromRule,
			}, nil
		}
	}

	if s.fallback != nil {
		answer, err := s.fallback.Answer(ctx, trimmed)
		if err == nil && strings.TrimSpace(answer) != "" {
			return models.AdvisorAnswer{
				Question: trimmed,
				Answer:   answer,
				Source:   models.AnswerFromGemini,
			}, nil
		}
		slog.Warn("advisor fallback failed, using default answer", "error", err)
	}

	return models.AdvisorAnswer{
		Question: trimmed,
		Answer:   answerDefault,
		Source:   models.AnswerFromDefault,
	}, nil
}
