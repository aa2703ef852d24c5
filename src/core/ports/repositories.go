// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"qaboard/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// QuestionRepository owns every read and write of questions and answers.
// Implementations surface storage faults only as domain.ErrDatabaseQuery and
// missing rows as domain.ErrNotFound.
//
//go:generate mockgen -package mock -source=repositories.go -destination=mock/repositories.go
type QuestionRepository interface {
	Repository

	ListQuestions(ctx context.Context, p domain.Pagination) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id int64) (*domain.Question, error)
	CreateQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, id int64, q domain.UpdateQuestion) (*domain.Question, error)
	// DeleteQuestion returns domain.ErrNotFound when no row matched.
	DeleteQuestion(ctx context.Context, id int64) error

	CreateAnswer(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error)
}
