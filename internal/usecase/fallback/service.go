// Package fallback asks a generative model for general regulation guidance
// when no document matched a query.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/2025DataEdu/project-5/internal/domain"
)

// SystemPrompt instructs the model to answer as a Korean workplace
// regulation expert in 200-300 characters.
const SystemPrompt = `당신은 한국의 업무 규정 전문가입니다. 사용자의 질문에 대해 일반적인 업무 규정이나 절차에 대한 안내를 제공해주세요.
답변은 한국어로 작성하고, 구체적이고 실용적인 정보를 포함해야 합니다.
답변 형식:
1. 질문과 관련된 일반적인 규정이나 절차 설명
2. 필요한 서류나 단계
3. 주의사항이나 추가 고려사항

답변은 200-300자 정도로 간결하게 작성해주세요.`

// Completer produces one chat completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Answer is generated guidance for a query.
type Answer struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// Service produces AI guidance.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates the fallback service.
func New(c Completer, logger *zap.Logger) *Service {
	return &Service{completer: c, logger: logger}
}

// Explain returns guidance for q. Any failure is an *domain.AIFallbackError.
func (s *Service) Explain(ctx context.Context, q string) (Answer, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return Answer{}, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}

	text, err := s.completer.Complete(ctx, SystemPrompt, q)
	if err != nil {
		s.logger.Warn("AI guidance failed", zap.String("query", q), zap.Error(err))
		return Answer{}, &domain.AIFallbackError{Err: err}
	}

	s.logger.Info("AI guidance generated", zap.String("query", q), zap.Int("length", len([]rune(text))))
	return Answer{Query: q, Response: text}, nil
}
