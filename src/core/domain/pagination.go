package domain

import (
	"strconv"

	"github.com/samber/lo"
)

// Query parameter names accepted by ExtractPagination.
const (
	ParamLimit  = "limit"
	ParamOffset = "offset"
)

// Pagination bounds a list query. A nil Limit means no limit.
type Pagination struct {
	Limit  *int
	Offset int
}

// ExtractPagination turns raw query parameters into a Pagination.
//
// An empty map yields the default window (no limit, offset 0). Otherwise both
// "limit" and "offset" must be present and parse as base-10 integers; the
// result is either fully populated or an error, never partial.
func ExtractPagination(params map[string]string) (Pagination, error) {
	if len(params) == 0 {
		return Pagination{}, nil
	}

	rawLimit, okLimit := params[ParamLimit]
	rawOffset, okOffset := params[ParamOffset]
	if !okLimit || !okOffset {
		return Pagination{}, NewMissingParametersError()
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		return Pagination{}, NewParseIntError(ParamLimit, err)
	}
	if limit <= 0 {
		return Pagination{}, &DomainError{Base: ErrParseInt, Field: ParamLimit, Message: "must be positive"}
	}

	offset, err := strconv.Atoi(rawOffset)
	if err != nil {
		return Pagination{}, NewParseIntError(ParamOffset, err)
	}
	if offset < 0 {
		return Pagination{}, &DomainError{Base: ErrParseInt, Field: ParamOffset, Message: "must not be negative"}
	}

	return Pagination{Limit: lo.ToPtr(limit), Offset: offset}, nil
}
