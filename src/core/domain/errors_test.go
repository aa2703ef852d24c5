package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"qaboard/src/core/domain"
)

func TestNewModerationStatusError_Classifies(t *testing.T) {
	err := domain.NewModerationStatusError(403, "invalid api key")
	require.ErrorIs(t, err, domain.ErrModerationClient)
	require.NotErrorIs(t, err, domain.ErrModerationServer)
	require.True(t, domain.IsModeration(err))

	err = domain.NewModerationStatusError(503, "unavailable")
	require.ErrorIs(t, err, domain.ErrModerationServer)
	require.Equal(t, 503, err.Status)
	require.Contains(t, err.Error(), "status: 503")
}

func TestDomainError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewDatabaseQueryError(cause)

	require.True(t, domain.IsDatabaseQuery(err))
	require.ErrorIs(t, err, cause)
	require.False(t, domain.IsNotFound(err))
}

func TestDomainError_Message(t *testing.T) {
	require.Equal(t, "resource not found: question", domain.NewNotFoundError("question").Error())
	require.Equal(t, "missing parameters", domain.NewMissingParametersError().Error())
}

func TestNotFoundIsDistinctFromDatabaseQuery(t *testing.T) {
	nf := domain.NewNotFoundError("question")
	require.True(t, domain.IsNotFound(nf))
	require.False(t, domain.IsDatabaseQuery(nf))
}
