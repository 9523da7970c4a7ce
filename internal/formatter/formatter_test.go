package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBasicCode(t *testing.T) {
	input := "package main\ntype User struct {\nName string `json:\"name\"`\nAge float64 `json:\"age\"`\n}"

	got, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Contains(t, got, "type User struct {")
	assert.Contains(t, got, "\tName string")
}

func TestFormatIsIdempotent(t *testing.T) {
	input := "package main\n\ntype User struct {\n\tName string `json:\"name\"`\n}\n"

	f := NewFormatter()
	once, err := f.Format(input)
	require.NoError(t, err)
	twice, err := f.Format(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFormatEmptyInput(t *testing.T) {
	got, err := NewFormatter().Format("   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFormatInvalidCode(t *testing.T) {
	_, err := NewFormatter().Format("package main\nfunc broken( {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Go code")
}

func TestFormatGroupsImports(t *testing.T) {
	input := "package main\n\nimport (\n\tjson \"github.com/goccy/go-json\"\n\t\"sync\"\n\t\"reflect\"\n)\n\nvar _ = sync.Once{}\nvar _ = reflect.TypeOf(0)\nvar _ = json.Marshal\n"

	got, err := NewFormatter().Format(input)
	require.NoError(t, err)

	reflectIdx := indexOf(t, got, "\"reflect\"")
	syncIdx := indexOf(t, got, "\"sync\"")
	goccyIdx := indexOf(t, got, "github.com/goccy/go-json")
	assert.Less(t, reflectIdx, syncIdx, "standard library imports should be sorted")
	assert.Less(t, syncIdx, goccyIdx, "third-party imports should follow the standard library")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in output", needle)
	return idx
}
