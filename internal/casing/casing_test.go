package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		wire string
		mode models.CasingMode
		want string
	}{
		{"none keeps valid identifier", "first_name", models.CasingNone, "first_name"},
		{"none normalizes invalid identifier", "first-name", models.CasingNone, "first_name"},
		{"snake from snake", "first_name", models.CasingSnake, "first_name"},
		{"snake from camel", "firstName", models.CasingSnake, "first_name"},
		{"camel from snake", "first_name", models.CasingCamel, "firstName"},
		{"camel from camel", "firstName", models.CasingCamel, "firstName"},
		{"pascal from snake", "company_name", models.CasingPascal, "CompanyName"},
		{"pascal from pascal", "CompanyName", models.CasingPascal, "CompanyName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.wire, tt.mode))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	wires := []string{"first_name", "firstName", "FirstName", "jobs_list", "a", "x9"}
	modes := []models.CasingMode{models.CasingNone, models.CasingSnake, models.CasingCamel, models.CasingPascal}

	for _, wire := range wires {
		for _, mode := range modes {
			once := Apply(wire, mode)
			twice := Apply(once, mode)
			assert.Equal(t, once, twice, "Apply(%q, %v) is not idempotent", wire, mode)
		}
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"first_name", "first_name"},
		{"first-name", "first_name"},
		{"my key!", "my_key"},
		{"123abc", "_123abc"},
		{"$$$", "field"},
		{"", "field"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Identifier(tt.in), "Identifier(%q)", tt.in)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "CompanyName", TypeName("company_name"))
	assert.Equal(t, "Details", TypeName("details"))
	assert.Equal(t, "Field", TypeName("$$$"))
}

func TestConstantName(t *testing.T) {
	assert.Equal(t, "COMPANY_JSON_VALUE", ConstantName("Company"))
	assert.Equal(t, "USER_PROFILE_JSON_VALUE", ConstantName("UserProfile"))
}
