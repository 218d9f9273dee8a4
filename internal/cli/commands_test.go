package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todoodoo/internal/model"
)

func TestClip(t *testing.T) {
	assert.Equal(t, "Buy milk", clip("Buy milk"))

	long := strings.Repeat("ç", 100)
	got := clip(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, titleWidth, ansi.StringWidth(got))

	wide := strings.Repeat("日本", 50)
	got = clip(wide)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, ansi.StringWidth(got), titleWidth)
}

func TestFlatLines_KeepsFullListIndex(t *testing.T) {
	lines := flatLines([]indexed{{n: 2, todo: model.Todo{ID: "2", Title: "Pay bills", Completed: true}}})
	if assert.Len(t, lines, 1) {
		assert.Contains(t, lines[0], " 2.")
		assert.Contains(t, lines[0], "Pay bills")
	}
}
