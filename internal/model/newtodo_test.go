package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewTodo(t *testing.T) {
	v := validator.New()

	_, err := ValidateNewTodo(v, "", "2025-03-05")
	assert.ErrorIs(t, err, ErrIncomplete)
	_, err = ValidateNewTodo(v, "Buy milk", "")
	assert.ErrorIs(t, err, ErrIncomplete)
	_, err = ValidateNewTodo(v, "   ", " ")
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = ValidateNewTodo(v, "Buy milk", "05/03/2025")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, "date must be YYYY-MM-DD", err.Error())

	_, err = ValidateNewTodo(v, "Buy milk", "2025-02-30")
	assert.Error(t, err)

	in, err := ValidateNewTodo(v, " Buy milk ", "2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, NewTodo{Title: "Buy milk", Date: "2025-03-05"}, in)
}
