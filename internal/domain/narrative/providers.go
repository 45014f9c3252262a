package narrative

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const generationTemperature = 0.2

type langchainModel struct {
	name string
	llm  llms.Model
}

func (m *langchainModel) Name() string { return m.name }

func (m *langchainModel) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithTemperature(generationTemperature))
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", m.name, err)
	}
	return out, nil
}

// NewOpenAI builds an OpenAI-backed model provider.
func NewOpenAI(apiKey, modelName string) (Model, error) {
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("init openai provider: %w", err)
	}
	return &langchainModel{name: "openai", llm: llm}, nil
}

// NewGoogleAI builds a Gemini-backed model provider.
func NewGoogleAI(ctx context.Context, apiKey, modelName string) (Model, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("init googleai provider: %w", err)
	}
	return &langchainModel{name: "googleai", llm: llm}, nil
}
