package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[██░░] 1/2", ProgressBar(1, 2, 4))
	assert.Equal(t, "[░░░░] 0/1", ProgressBar(0, 0, 4))
	assert.Equal(t, "[████] 5/3", ProgressBar(5, 3, 4))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("") })

	SetTheme("MONO")
	assert.Equal(t, "mono", Current().Name)
	assert.Equal(t, "[x]", Current().BoxChecked)

	SetTheme("neon")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("whatever")
	assert.Equal(t, "classic", Current().Name)
}

func TestOKFailPanel(t *testing.T) {
	var out bytes.Buffer
	OK(&out, "added")
	Fail(&out, "boom")
	assert.Contains(t, out.String(), "✔ added")
	assert.Contains(t, out.String(), "✖ boom")

	p := Panel("one", "two")
	assert.Contains(t, p, "one")
	assert.Contains(t, p, "two")
}
