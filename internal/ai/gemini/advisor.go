package gemini

import (
	"context"
	"fmt"
)

const advisorPrompt = `You are KrishiGPT, a farming assistant for small farmers in India.
Answer the farmer's question in at most 120 words of plain text, no markdown.
Prefer practical, low-cost advice and mention when a local agriculture officer
or Krishi Vigyan Kendra should be consulted.

Question: %s`

// FarmingAdvisor answers free-form farming questions through the selector.
type FarmingAdvisor struct {
	selector *GeminiClientSelector
}

func NewFarmingAdvisor(selector *GeminiClientSelector) *FarmingAdvisor {
	return &FarmingAdvisor{selector: selector}
}

func (a *FarmingAdvisor) Answer(ctx context.Context, question string) (string, error) {
	return SendTextWithRetry(ctx, fmt.Sprintf(advisorPrompt, question), a.selector)
}
