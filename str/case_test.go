package str

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToScreamingSnakeCase(t *testing.T) {
	t.Run("it should split camel and pascal case words", func(t *testing.T) {
		// GIVEN
		inputs := map[string]string{
			"camelCase":  "CAMEL_CASE",
			"PascalCase": "PASCAL_CASE",
			"LogLevel":   "LOG_LEVEL",
			"ConfigFile": "CONFIG_FILE",
		}

		for input, expected := range inputs {
			// WHEN
			result := ToScreamingSnakeCase(input)

			// THEN
			assert.Equal(t, expected, result, "input %q", input)
		}
	})

	t.Run("it should keep acronyms together", func(t *testing.T) {
		// GIVEN
		input := "DBName"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "DB_NAME", result)
	})

	t.Run("it should normalize existing separators", func(t *testing.T) {
		assert.Equal(t, "LOWER_CASE_STRING", ToScreamingSnakeCase("lower_case_string"))
		assert.Equal(t, "KEBAB_CASE_STRING", ToScreamingSnakeCase("kebab-case-string"))
		assert.Equal(t, "LEADING", ToScreamingSnakeCase("_leading"))
	})

	t.Run("it should separate numbers", func(t *testing.T) {
		assert.Equal(t, "VERSION_2_RELEASE", ToScreamingSnakeCase("version2Release"))
	})

	t.Run("it should handle empty and blank strings", func(t *testing.T) {
		assert.Equal(t, "", ToScreamingSnakeCase(""))
		assert.Equal(t, "", ToScreamingSnakeCase("   "))
	})
}

func TestUpperFirst(t *testing.T) {
	t.Run("it should upper case the first letter only", func(t *testing.T) {
		assert.Equal(t, "CodeProjects", UpperFirst("codeProjects"))
		assert.Equal(t, "Pages", UpperFirst("pages"))
		assert.Equal(t, "A", UpperFirst("a"))
	})

	t.Run("it should leave already capitalized or non letter strings untouched", func(t *testing.T) {
		assert.Equal(t, "Blog", UpperFirst("Blog"))
		assert.Equal(t, "2fa", UpperFirst("2fa"))
		assert.Equal(t, "_tmp", UpperFirst("_tmp"))
		assert.Equal(t, "", UpperFirst(""))
	})

	t.Run("it should handle multi byte characters", func(t *testing.T) {
		assert.Equal(t, "Événements", UpperFirst("événements"))
	})
}
