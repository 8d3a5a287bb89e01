package types

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilterMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []FilterMode{NoFilter, ExactCategory, CategorySubstring, ListedCategory} {
		got, ok := ParseFilterMode(strings.ToUpper(mode.String()))
		require.True(t, ok, "mode %s", mode)
		require.Equal(t, mode, got)
	}

	_, ok := ParseFilterMode("fuzzy")
	require.False(t, ok)
}

func TestCategoryKeepsNameAsListed(t *testing.T) {
	t.Parallel()

	require.Equal(t, Filter{Mode: ListedCategory, Text: " hair clips"}, Category(" hair clips"))
	require.Equal(t, Filter{Mode: ExactCategory, Text: " hair clips"}, Exact(" hair clips"))
}

func TestCoreTypesImportNoUIToolkit(t *testing.T) {
	t.Parallel()

	f, err := parser.ParseFile(token.NewFileSet(), "types.go", nil, parser.ImportsOnly)
	require.NoError(t, err)
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)
		require.NotContains(t, path, "charmbracelet", "types must stay independent of the TUI")
	}
}
