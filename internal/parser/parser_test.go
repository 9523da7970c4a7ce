package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-albanna/json-to-struct/internal/errors"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

func TestParseSimpleInvocation(t *testing.T) {
	invs, err := ParseString(`User { "first_name" => "John", "age" => 30 }`)
	require.NoError(t, err)
	require.Len(t, invs, 1)

	inv := invs[0]
	assert.Equal(t, "User", inv.Name)
	assert.Equal(t, models.FlagSet{}, inv.Flags)

	require.Equal(t, models.Object, inv.Root.Kind)
	require.Len(t, inv.Root.Members, 2)
	assert.Equal(t, "first_name", inv.Root.Members[0].Key)
	assert.Equal(t, models.StringValue("John"), inv.Root.Members[0].Value)
	assert.Equal(t, "age", inv.Root.Members[1].Key)
	assert.Equal(t, models.NumberValue(30), inv.Root.Members[1].Value)
}

func TestParseFlags(t *testing.T) {
	invs, err := ParseString(`Company @debug @camel @derive(PartialEq, Hash) @store_json @no_alias { }`)
	require.NoError(t, err)
	require.Len(t, invs, 1)

	flags := invs[0].Flags
	assert.True(t, flags.Debug)
	assert.Equal(t, models.CasingCamel, flags.Casing)
	assert.Equal(t, []string{"PartialEq", "Hash"}, flags.ExtraDerives)
	assert.True(t, flags.StoreJSON)
	assert.True(t, flags.NoAlias)
}

func TestParseFlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"two casing flags", `User @camel @snake { }`, errors.ErrFlagConflict},
		{"duplicate casing flag", `User @snake @snake { }`, errors.ErrFlagConflict},
		{"unknown flag", `User @wat { }`, errors.ErrUnknownFlag},
		{"args on plain flag", `User @snake(x) { }`, errors.ErrUnknownFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDeriveWithoutParens(t *testing.T) {
	_, err := ParseString(`User @derive { }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@derive(...)")
}

func TestParseDeriveDeduplicates(t *testing.T) {
	invs, err := ParseString(`User @derive(Eq, Eq, Hash) { }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eq", "Hash"}, invs[0].Flags.ExtraDerives)
}

func TestParseValues(t *testing.T) {
	invs, err := ParseString(`Sample {
		"text" => "hello",
		"int" => 42,
		"float" => 2.5,
		"neg" => -3,
		"exp" => 1e3,
		"yes" => true,
		"no" => false,
		"nothing" => null,
		"list" => [1, 2, 3],
		"nested" => { "inner" => "x" },
	}`)
	require.NoError(t, err)

	members := invs[0].Root.Members
	require.Len(t, members, 10)
	assert.Equal(t, models.StringValue("hello"), members[0].Value)
	assert.Equal(t, models.NumberValue(42), members[1].Value)
	assert.Equal(t, models.NumberValue(2.5), members[2].Value)
	assert.Equal(t, models.NumberValue(-3), members[3].Value)
	assert.Equal(t, models.NumberValue(1000), members[4].Value)
	assert.Equal(t, models.BoolValue(true), members[5].Value)
	assert.Equal(t, models.BoolValue(false), members[6].Value)
	assert.Equal(t, models.NullValue(), members[7].Value)
	assert.Equal(t, models.ArrayValue(models.NumberValue(1), models.NumberValue(2), models.NumberValue(3)), members[8].Value)
	require.Equal(t, models.Object, members[9].Value.Kind)
	assert.Equal(t, "inner", members[9].Value.Members[0].Key)
}

func TestParseTrailingCommas(t *testing.T) {
	invs, err := ParseString(`User { "tags" => ["a", "b",], "age" => 1, }`)
	require.NoError(t, err)
	assert.Len(t, invs[0].Root.Members, 2)
}

func TestParseStringEscapes(t *testing.T) {
	invs, err := ParseString(`User { "key" => "line\nbreak \"quoted\" A" }`)
	require.NoError(t, err)
	assert.Equal(t, "line\nbreak \"quoted\" A", invs[0].Root.Members[0].Value.Str)
}

func TestParseComments(t *testing.T) {
	invs, err := ParseString(`
		// the user record
		User {
			"name" => "John", // inline
		}`)
	require.NoError(t, err)
	assert.Equal(t, "User", invs[0].Name)
}

func TestParseMultipleInvocations(t *testing.T) {
	invs, err := ParseString(`
		User { "name" => "John" }
		Company @camel { "company_name" => "Acme" }
	`)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "User", invs[0].Name)
	assert.Equal(t, "Company", invs[1].Name)
	assert.Equal(t, models.CasingCamel, invs[1].Flags.Casing)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing arrow", `User { "a" 1 }`},
		{"missing brace", `User { "a" => 1`},
		{"bare key", `User { a => 1 }`},
		{"unterminated string", `User { "a`},
		{"stray token", `User { "a" => 1 } ]`},
		{"unsupported literal", `User { "a" => undefined }`},
		{"lone equals", `User { "a" = 1 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrorTypeSyntax, appErr.Type)
		})
	}
}

func TestParseSyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseString("User {\n\t\"a\" 1\n}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := ParseString("   \n ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}
