package usecase

import (
	"context"
	"log/slog"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// AnswerService handles answer creation.
type AnswerService struct {
	repo ports.QuestionRepository
	log  *slog.Logger
}

func NewAnswerService(repo ports.QuestionRepository, log *slog.Logger) *AnswerService {
	return &AnswerService{repo: repo, log: log}
}

// Create stores an answer. The referenced question is not looked up, so
// answers to unknown questions are accepted.
func (s *AnswerService) Create(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	answer, err := s.repo.CreateAnswer(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Debug("answer created", "answer_id", answer.ID, "question_id", answer.QuestionID)
	return answer, nil
}
