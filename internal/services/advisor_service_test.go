package services

import (
	"context"
	"errors"
	"testing"

	"registration-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFallback struct {
	answer string
	err    error
	asked  []string
}

func (s *stubFallback) Answer(ctx context.Context, q string) (string, error) {
	s.asked = append(s.asked, q)
	return s.answer, s.err
}

func TestAsk_MatchesRulesInOrder(t *testing.T) {
	svc := NewAdvisorService(nil)

	cases := []struct {
		question string
		topic    string
	}{
		{"When should I plant wheat?", "wheat_planting"},
		{"Best time for WHEAT planting", "wheat_planting"},
		{"How to control pests on cotton", "organic_pest_control"},
		{"Which fertilizer for tomato plants?", "tomato_fertilizer"},
		{"What are the benefits of crop rotation?", "crop_rotation"},
		{"How does weather affect my crop?", "weather_impact"},
		{"My soil ph is low", "soil_ph"},
		{"How much nitrogen for maize?", "npk"},
		{"Is organic farming profitable?", "organic_farming"},
		{"How often should I water onions?", "irrigation"},
		{"Can you help me?", "help"},
		{"hi", "greeting"},
		{"Hey there!", "greeting"},
		{"thank you", "thanks"},
		// pest + organic comes before organic + farming
		{"organic farming pest tips", "organic_pest_control"},
		// crop rotation comes before weather + crop
		{"crop rotation in rainy weather", "crop_rotation"},
	}

	for _, tc := range cases {
		got, err := svc.Ask(context.Background(), tc.question)
		require.NoError(t, err, tc.question)
		assert.Equal(t, tc.topic, got.Topic, tc.question)
		assert.Equal(t, models.AnswerFromRule, got.Source, tc.question)
		assert.NotEmpty(t, got.Answer, tc.question)
	}
}

func TestAsk_GreetingsMatchWholeWordsOnly(t *testing.T) {
	svc := NewAdvisorService(nil)

	got, err := svc.Ask(context.Background(), "which chilli variety grows fastest")
	require.NoError(t, err)
	assert.Equal(t, models.AnswerFromDefault, got.Source)
}

func TestAsk_RejectsEmptyQuestion(t *testing.T) {
	svc := NewAdvisorService(nil)

	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAsk_UnmatchedQuestionUsesFallback(t *testing.T) {
	fallback := &stubFallback{answer: "Sow bajra in late June."}
	svc := NewAdvisorService(fallback)

	got, err := svc.Ask(context.Background(), " When to sow bajra? ")
	require.NoError(t, err)
	assert.Equal(t, models.AnswerFromGemini, got.Source)
	assert.Equal(t, "Sow bajra in late June.", got.Answer)
	assert.Equal(t, []string{"When to sow bajra?"}, fallback.asked)
}

func TestAsk_RuleMatchSkipsFallback(t *testing.T) {
	fallback := &stubFallback{answer: "unused"}
	svc := NewAdvisorService(fallback)

	_, err := svc.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, fallback.asked)
}

func TestAsk_FallbackErrorUsesDefault(t *testing.T) {
	svc := NewAdvisorService(&stubFallback{err: errors.New("quota exceeded")})

	got, err := svc.Ask(context.Background(), "market price of bajra")
	require.NoError(t, err)
	assert.Equal(t, models.AnswerFromDefault, got.Source)
	assert.Equal(t, answerDefault, got.Answer)
}
