package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoodoo/internal/model"
)

func TestAddForm_EmptyFieldsSendNothing(t *testing.T) {
	svc := newFake(sampleTodos()...)
	m := signedIn(t, svc)

	m, _ = send(t, m, keyRunes("a"))
	require.True(t, m.list.form.open)

	m, cmd := send(t, m, keyEnter)
	assert.Nil(t, cmd)

	m, _ = send(t, m, keyRunes("Buy bread"))
	m, cmd = send(t, m, keyEnter)
	assert.Nil(t, cmd, "date still empty")

	m.list.form.title.SetValue("")
	m.list.form.date.SetValue("2025-03-05")
	_, cmd = send(t, m, keyEnter)
	assert.Nil(t, cmd, "title empty")

	assert.Empty(t, svc.creates)
}

func TestAddForm_InvalidDate(t *testing.T) {
	svc := newFake()
	m := signedIn(t, svc)

	m, _ = send(t, m, keyRunes("a"))
	m, _ = send(t, m, keyRunes("Buy bread"))
	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("2025-13-40"))
	m, cmd := send(t, m, keyEnter)

	assert.Nil(t, cmd)
	assert.Empty(t, svc.creates)
	assert.Contains(t, m.View(), "date must be YYYY-MM-DD")
}

func TestAddForm_CreateRefetches(t *testing.T) {
	svc := newFake(sampleTodos()...)
	m := signedIn(t, svc)
	before := svc.listCalls()

	m, _ = send(t, m, keyRunes("a"))
	m, _ = send(t, m, keyRunes("Buy bread"))
	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyRunes("2025-03-05"))
	m, cmd := send(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.list.form.submitting)
	assert.Contains(t, m.View(), "Adding...")

	m, cmd = exec(t, m, cmd)
	assert.False(t, m.list.form.open)
	assert.Empty(t, m.list.form.title.Value())

	m, _ = exec(t, m, cmd)
	assert.Equal(t, []model.NewTodo{{Title: "Buy bread", Date: "2025-03-05"}}, svc.creates)
	assert.Equal(t, before+1, svc.listCalls())
	assert.Equal(t, []string{"Buy milk", "Pay bills", "Buy bread"}, visibleTitles(m))
}

func TestAddForm_CreateFailureKeepsForm(t *testing.T) {
	svc := newFake()
	svc.failCreate = true
	m := signedIn(t, svc)
	before := svc.listCalls()

	m, _ = send(t, m, keyRunes("a"))
	m.list.form.title.SetValue("Buy bread")
	m.list.form.date.SetValue("2025-03-05")
	m, cmd := send(t, m, keyEnter)
	m, cmd = exec(t, m, cmd)

	assert.Nil(t, cmd)
	assert.Equal(t, before, svc.listCalls())
	assert.True(t, m.list.form.open)
	assert.False(t, m.list.form.submitting)
	assert.Equal(t, "Buy bread", m.list.form.title.Value())
	assert.Equal(t, "Could not add todo.", m.list.status)
}

func TestAddForm_EscCancels(t *testing.T) {
	m := signedIn(t, newFake())

	m, _ = send(t, m, keyRunes("a"))
	m, _ = send(t, m, keyRunes("q"))
	assert.Equal(t, "q", m.list.form.title.Value(), "keys type into the form instead of quitting")

	m, _ = send(t, m, keyEsc)
	assert.False(t, m.list.form.open)
	assert.Empty(t, m.list.form.title.Value())
	assert.Contains(t, m.View(), "+ Add a new todo (a)")
}
