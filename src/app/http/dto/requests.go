package dto

import "qaboard/src/core/domain"

// CreateQuestionRequest is the JSON payload for POST /questions.
type CreateQuestionRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r *CreateQuestionRequest) ToDomain() domain.NewQuestion {
	return domain.NewQuestion{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// UpdateQuestionRequest is the JSON payload for PUT /questions/:id. Any id
// in the body is ignored; the path decides which question is replaced.
type UpdateQuestionRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

func (r *UpdateQuestionRequest) ToDomain() domain.UpdateQuestion {
	return domain.UpdateQuestion{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// CreateAnswerRequest is the form payload for POST /comments.
type CreateAnswerRequest struct {
	Content    string `form:"content" binding:"required"`
	QuestionID int32  `form:"question_id" binding:"required"`
}

func (r *CreateAnswerRequest) ToDomain() domain.NewAnswer {
	return domain.NewAnswer{Content: r.Content, QuestionID: int64(r.QuestionID)}
}
