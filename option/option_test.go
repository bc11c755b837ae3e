package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type connectOptions struct {
	URI      string
	Database string
}

func withURI(uri string) Option[connectOptions] {
	return func(opts *connectOptions) {
		opts.URI = uri
	}
}

func withDatabase(database string) Option[connectOptions] {
	return func(opts *connectOptions) {
		opts.Database = database
	}
}

func TestBuild(t *testing.T) {
	t.Run("it should keep defaults without options", func(t *testing.T) {
		// GIVEN
		defaults := &connectOptions{URI: "mongodb://localhost:27017"}

		// WHEN
		result := Build(defaults)

		// THEN
		assert.Same(t, defaults, result)
		assert.Equal(t, "mongodb://localhost:27017", result.URI)
	})

	t.Run("it should apply options in order", func(t *testing.T) {
		// WHEN
		result := Build(
			&connectOptions{},
			withURI("mongodb://a:27017"),
			withDatabase("blog"),
			withURI("mongodb://b:27017"),
		)

		// THEN
		assert.Equal(t, "mongodb://b:27017", result.URI)
		assert.Equal(t, "blog", result.Database)
	})

	t.Run("it should skip nil options", func(t *testing.T) {
		// WHEN
		result := Build(&connectOptions{}, nil, withDatabase("blog"))

		// THEN
		assert.Equal(t, "blog", result.Database)
	})
}
