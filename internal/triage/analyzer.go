// Package triage оценивает тяжесть состояния по описанию симптомов.
package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are a medical triage AI assistant. Analyze emergency symptoms and provide a structured assessment."

const userPromptTemplate = `Analyze these emergency symptoms and provide a structured assessment.

Symptoms: %s
Additional Info: %s

Respond ONLY with a JSON object in this exact format (no markdown, no backticks):
{
  "severity": "LOW" | "MEDIUM" | "HIGH" | "CRITICAL",
  "possibleConditions": ["condition1", "condition2", "condition3"],
  "recommendedAction": "Brief action recommendation",
  "estimatedResponseTime": "5-10 minutes" or similar
}

Severity guidelines:
- CRITICAL: Life-threatening (chest pain, difficulty breathing, severe bleeding, loss of consciousness)
- HIGH: Serious but not immediately life-threatening (high fever, severe pain, suspected fractures)
- MEDIUM: Requires medical attention soon (moderate pain, persistent vomiting, minor injuries)
- LOW: Can wait for routine care (mild symptoms, minor cuts, cold/flu symptoms)`

// ErrNotConfigured - ключ OpenAI не задан
var ErrNotConfigured = errors.New("triage: analyzer is not configured")

// FallbackAnalysis - анализ по умолчанию, когда модель недоступна или ответила мусором
func FallbackAnalysis() *models.Analysis {
	return &models.Analysis{
		Severity:              string(models.PriorityMedium),
		PossibleConditions:    []string{"Unable to analyze - please describe symptoms in detail"},
		RecommendedAction:     "Emergency services will assess your situation",
		EstimatedResponseTime: "10-15 minutes",
	}
}

// OpenAIAnalyzer отправляет симптомы в чат-модель и разбирает JSON-ответ
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func NewOpenAIAnalyzer(client *openai.Client, model string, logger *logrus.Logger) *OpenAIAnalyzer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnalyzer{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Analyze возвращает оценку модели. Ошибки не подменяются резервным анализом,
// это решает вызывающая сторона.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, symptoms string, additionalInfo *string) (*models.Analysis, error) {
	if a.client == nil {
		return nil, ErrNotConfigured
	}

	info := "None provided"
	if additionalInfo != nil && strings.TrimSpace(*additionalInfo) != "" {
		info = strings.TrimSpace(*additionalInfo)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(userPromptTemplate, symptoms, info),
			},
		},
		MaxTokens:   500,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai returned empty response or choices")
	}

	analysis, err := ParseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"service":  "triage",
		"severity": analysis.Severity,
	}).Debug("Symptoms analyzed")
	return analysis, nil
}

// ParseAnalysis разбирает ответ модели, допускается обертка в ```json ... ```
func ParseAnalysis(raw string) (*models.Analysis, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(clean), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	analysis.Severity = strings.ToUpper(strings.TrimSpace(analysis.Severity))
	if analysis.Severity == "" {
		return nil, fmt.Errorf("analysis has no severity")
	}
	if analysis.PossibleConditions == nil {
		analysis.PossibleConditions = []string{}
	}
	return &analysis, nil
}

// NewAnalyzer собирает анализатор по конфигурации. Без OPENAI_API_KEY
// анализатор всегда возвращает ErrNotConfigured.
func NewAnalyzer(cfg *config.Config, logger *logrus.Logger) *OpenAIAnalyzer {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, symptom triage will use the fallback analysis")
		return NewOpenAIAnalyzer(nil, cfg.OpenAIModel, logger)
	}
	return NewOpenAIAnalyzer(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, logger)
}
