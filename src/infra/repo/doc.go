// Package repo contains the PostgreSQL implementation of ports.QuestionRepository.
//
// The repository receives the pool via constructor injection. It is the only
// component that issues question and answer identifiers, and the boundary at
// which driver errors stop: every storage fault is logged here with full detail
// and returned to callers as domain.ErrDatabaseQuery.
package repo
