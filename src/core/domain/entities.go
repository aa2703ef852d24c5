package domain

import "strconv"

// QuestionID is the store-assigned identifier of a question.
type QuestionID string

// AnswerID is the store-assigned identifier of an answer.
type AnswerID string

// QuestionIDFromInt formats a numeric row id as a QuestionID.
func QuestionIDFromInt(id int64) QuestionID {
	return QuestionID(strconv.FormatInt(id, 10))
}

// AnswerIDFromInt formats a numeric row id as an AnswerID.
func AnswerIDFromInt(id int64) AnswerID {
	return AnswerID(strconv.FormatInt(id, 10))
}

// Question is a persisted question.
type Question struct {
	ID      QuestionID `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// NewQuestion carries the client-supplied fields of a question to create.
// It has no ID: identifiers are only issued by the store.
type NewQuestion struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateQuestion replaces all mutable fields of an existing question.
type UpdateQuestion struct {
	Title   string
	Content string
	Tags    []string
}

// Answer is a persisted answer. QuestionID is not checked against existing
// questions.
type Answer struct {
	ID         AnswerID   `json:"id"`
	Content    string     `json:"content"`
	QuestionID QuestionID `json:"question_id"`
}

// NewAnswer carries the fields of an answer to create.
type NewAnswer struct {
	Content    string
	QuestionID int64
}
