// Package chat answers follow-up questions about a finished analysis. The
// caller passes the analysis context as free text; the model must ground its
// answer in those numbers only.
package chat

import (
	"context"
	"strings"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
)

const systemPrompt = `You are EcoScan AI, an expert satellite and climate analyst.
Use only numbers from context.
Reply in the same language as user.
Be concise and practical.`

const noContextReply = "Please run an analysis first. Click the map and hit Launch."

type Service struct {
	ai *ai.Client
}

func NewService(aiClient *ai.Client) *Service {
	return &Service{ai: aiClient}
}

// Reply answers one chat turn. ok=false means every provider failed and the
// response should be served with a 503 status.
func (s *Service) Reply(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, bool) {
	if strings.TrimSpace(req.Context) == "" {
		return &domain.ChatResponse{Reply: noContextReply}, true
	}

	res := s.ai.GenerateText(ctx, systemPrompt, req.Context, req.Message, req.History)
	if !res.OK {
		errMsg := res.Err
		if errMsg == "" {
			errMsg = "unknown error"
		}
		return &domain.ChatResponse{Reply: "AI unavailable: " + errMsg}, false
	}

	return &domain.ChatResponse{Reply: res.Text, Provider: res.Provider}, true
}
