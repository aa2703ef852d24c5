package ports

import (
	"context"
)

// Moderator screens free text and returns its censored form.
//
//go:generate mockgen -package mock -source=services.go -destination=mock/services.go
type Moderator interface {
	Check(ctx context.Context, text string) (string, error)
}
