package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// QuestionService handles question listing and the moderated write flows.
type QuestionService struct {
	repo      ports.QuestionRepository
	moderator ports.Moderator
	log       *slog.Logger
}

func NewQuestionService(repo ports.QuestionRepository, moderator ports.Moderator, log *slog.Logger) *QuestionService {
	return &QuestionService{repo: repo, moderator: moderator, log: log}
}

// List returns questions inside the pagination window.
func (s *QuestionService) List(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	return s.repo.ListQuestions(ctx, p)
}

// Get returns a single question.
func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	return s.repo.GetQuestion(ctx, id)
}

// Create moderates title and content, then persists the censored question.
func (s *QuestionService) Create(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	title, content, err := s.moderate(ctx, q.Title, q.Content)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateQuestion(ctx, domain.NewQuestion{
		Title:   title,
		Content: content,
		Tags:    q.Tags,
	})
}

// Update moderates title and content, then replaces the stored question.
func (s *QuestionService) Update(ctx context.Context, id int64, q domain.UpdateQuestion) (*domain.Question, error) {
	title, content, err := s.moderate(ctx, q.Title, q.Content)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateQuestion(ctx, id, domain.UpdateQuestion{
		Title:   title,
		Content: content,
		Tags:    q.Tags,
	})
}

// Delete removes a question. A missing question yields domain.ErrNotFound.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteQuestion(ctx, id)
}

// moderate checks title and content concurrently. The first failure cancels
// the other call and is the only error returned.
func (s *QuestionService) moderate(ctx context.Context, title, content string) (string, string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var censoredTitle, censoredContent string
	g.Go(func() error {
		var err error
		censoredTitle, err = s.moderator.Check(gctx, title)
		return err
	})
	g.Go(func() error {
		var err error
		censoredContent, err = s.moderator.Check(gctx, content)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Debug("question rejected by moderation", "error", err)
		return "", "", err
	}
	return censoredTitle, censoredContent, nil
}
