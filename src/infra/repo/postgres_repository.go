package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
	"qaboard/src/infra/db"
)

var _ ports.QuestionRepository = (*PostgresRepository)(nil)

// PostgresRepository implements QuestionRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// queryError logs the driver error and hides it behind ErrDatabaseQuery.
func (r *PostgresRepository) queryError(op string, err error) error {
	attrs := []any{"op", op, "error", err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs, "sqlstate", pgErr.Code, "detail", pgErr.Detail)
	}
	r.log.Error("database query failed", attrs...)
	return domain.NewDatabaseQueryError(err)
}

const questionColumns = "id, title, content, tags"

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var (
		id int64
		q  domain.Question
	)
	if err := row.Scan(&id, &q.Title, &q.Content, &q.Tags); err != nil {
		return nil, err
	}
	q.ID = domain.QuestionIDFromInt(id)
	return &q, nil
}

// Questions

func (r *PostgresRepository) ListQuestions(ctx context.Context, p domain.Pagination) ([]domain.Question, error) {
	// LIMIT NULL is LIMIT ALL.
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, r.queryError("list_questions", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, r.queryError("list_questions", err)
		}
		questions = append(questions, *question)
	}
	if err := rows.Err(); err != nil {
		return nil, r.queryError("list_questions", err)
	}
	return questions, nil
}

func (r *PostgresRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	const q = `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE id = $1
	`
	question, err := scanQuestion(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("question")
		}
		return nil, r.queryError("get_question", err)
	}
	return question, nil
}

func (r *PostgresRepository) CreateQuestion(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	const q = `
		INSERT INTO questions (title, content, tags)
		VALUES ($1, $2, $3)
		RETURNING ` + questionColumns
	question, err := scanQuestion(r.pool.QueryRow(ctx, q, nq.Title, nq.Content, nq.Tags))
	if err != nil {
		return nil, r.queryError("create_question", err)
	}
	return question, nil
}

func (r *PostgresRepository) UpdateQuestion(ctx context.Context, id int64, uq domain.UpdateQuestion) (*domain.Question, error) {
	const q = `
		UPDATE questions
		SET title = $1, content = $2, tags = $3
		WHERE id = $4
		RETURNING ` + questionColumns
	question, err := scanQuestion(r.pool.QueryRow(ctx, q, uq.Title, uq.Content, uq.Tags, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("question")
		}
		return nil, r.queryError("update_question", err)
	}
	return question, nil
}

func (r *PostgresRepository) DeleteQuestion(ctx context.Context, id int64) error {
	const q = `DELETE FROM questions WHERE id = $1`
	res, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return r.queryError("delete_question", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("question")
	}
	return nil
}

// Answers

func (r *PostgresRepository) CreateAnswer(ctx context.Context, na domain.NewAnswer) (*domain.Answer, error) {
	const q = `
		INSERT INTO answers (content, question_id)
		VALUES ($1, $2)
		RETURNING id, content, question_id
	`
	var (
		id, questionID int64
		a              domain.Answer
	)
	if err := r.pool.QueryRow(ctx, q, na.Content, na.QuestionID).Scan(&id, &a.Content, &questionID); err != nil {
		return nil, r.queryError("create_answer", err)
	}
	a.ID = domain.AnswerIDFromInt(id)
	a.QuestionID = domain.QuestionIDFromInt(questionID)
	return &a, nil
}
