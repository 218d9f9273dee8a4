package model

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrIncomplete means title or date is blank. Callers send nothing.
var ErrIncomplete = errors.New("title and date are required")

// NewTodo is the create payload as entered by the user.
type NewTodo struct {
	Title string `validate:"required"`
	Date  string `validate:"required,datetime=2006-01-02"`
}

// ValidateNewTodo trims the input and checks it. Blank fields give
// ErrIncomplete; a malformed date gives a message fit for display.
func ValidateNewTodo(v *validator.Validate, title, date string) (NewTodo, error) {
	in := NewTodo{Title: strings.TrimSpace(title), Date: strings.TrimSpace(date)}
	if in.Title == "" || in.Date == "" {
		return in, ErrIncomplete
	}
	if err := v.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 && ve[0].Field() == "Date" {
			return in, errors.New("date must be YYYY-MM-DD")
		}
		return in, err
	}
	return in, nil
}
