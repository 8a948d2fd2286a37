package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	t.Run("renders header separator and rows", func(t *testing.T) {
		out := RenderTable(
			[]string{"Date", "Description", "Amount"},
			[][]string{
				{"15/06/2025", "Grocery run", "45.90"},
				{"16/06/2025", "Bus ticket", "3.20"},
			},
		)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "Description")
		assert.Contains(t, lines[1], "─")
		assert.Contains(t, lines[2], "Grocery run")
		assert.Contains(t, lines[3], "3.20")
	})

	t.Run("pads columns to the widest cell", func(t *testing.T) {
		out := RenderTable(
			[]string{"ID", "Name"},
			[][]string{
				{"1", "a much longer value"},
				{"22", "b"},
			},
		)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[3], "22"))
		assert.Contains(t, lines[2], "1 ")
	})

	t.Run("empty rows still renders header", func(t *testing.T) {
		out := RenderTable([]string{"One", "Two"}, nil)

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "One")
	})
}
