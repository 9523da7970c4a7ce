package infer

import "strings"

// Array element types are named after the singular form of the owning
// key, so "employees" yields an Employee definition. This is a basic
// rule set; irregular plurals come from a small table.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"teeth":     "tooth",
	"feet":      "foot",
	"mice":      "mouse",
	"geese":     "goose",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

func (in *Inferrer) singularize(plural string) string {
	if !in.cfg.Singularize {
		return plural
	}
	return singularize(plural)
}

func singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		// Preserve a capitalized first letter
		if len(plural) > 0 && strings.ToUpper(string(plural[0])) == string(plural[0]) {
			if len(singular) > 0 {
				return strings.ToUpper(string(singular[0])) + singular[1:]
			}
		}
		return singular
	}

	lowerPlural := strings.ToLower(plural)

	if strings.HasSuffix(lowerPlural, "ies") && len(lowerPlural) > 3 {
		return plural[:len(plural)-3] + "y"
	}

	// Avoid trimming 's' from words like 'class', 'status', 'basis'
	if strings.HasSuffix(lowerPlural, "ss") ||
		strings.HasSuffix(lowerPlural, "us") ||
		strings.HasSuffix(lowerPlural, "is") {
		return plural
	}

	if strings.HasSuffix(lowerPlural, "es") && len(lowerPlural) > 2 {
		trimmed := lowerPlural[:len(lowerPlural)-2]
		if strings.HasSuffix(trimmed, "x") || strings.HasSuffix(trimmed, "ch") || strings.HasSuffix(trimmed, "sh") {
			return plural[:len(plural)-2]
		}
	}

	if strings.HasSuffix(lowerPlural, "s") && len(lowerPlural) > 1 {
		return plural[:len(plural)-1]
	}

	return plural
}
