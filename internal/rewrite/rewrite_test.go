package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BlogPost", "blog_post"},
		{"ID", "id"},
		{"UserID", "user_id"},
		{"CreatedAt", "created_at"},
		{"HTTPServer", "http_server"},
		{"FK_Blog_Post_BlogId", "fk_blog_post_blog_id"},
		{"PK_Animal", "pk_animal"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}

func TestUpperSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BlogPost", "BLOG_POST"},
		{"UserID", "USER_ID"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, UpperSnakeCase(tt.input))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BlogPost", "blogPost"},
		{"user_name", "userName"},
		{"ID", "id"},
		{"HTTPServer", "httpServer"},
		{"Name", "name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CamelCase(tt.input))
		})
	}
}

func TestSnakeCaseIsStableOnItsOwnOutput(t *testing.T) {
	// The engine never feeds a rewritten name back in, but the rewriter
	// itself must not depend on that for correctness of snake input.
	for _, input := range []string{"BlogPost", "UserID", "Person_Street"} {
		once := SnakeCase(input)
		assert.Equal(t, once, SnakeCase(once))
	}
}

func TestForConvention(t *testing.T) {
	rw, err := ForConvention(ConventionSnakeCase)
	require.NoError(t, err)
	assert.Equal(t, "blog_post", rw.Rewrite("BlogPost"))

	rw, err = ForConvention(ConventionNone)
	require.NoError(t, err)
	assert.Equal(t, "BlogPost", rw.Rewrite("BlogPost"))

	_, err = ForConvention("kebab-case")
	assert.Error(t, err)
}

func TestPluralizer(t *testing.T) {
	base, err := ForConvention(ConventionSnakeCase)
	require.NoError(t, err)

	p := NewPluralizer(base, map[string]string{"person": "people"})

	tests := []struct {
		input    string
		expected string
	}{
		{"Animal", "animals"},
		{"BlogPost", "blog_posts"},
		{"Person", "people"},
		{"Category", "categories"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Rewrite(tt.input))
		})
	}
}

func TestConfigTableRewriter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PluralizeTableNames = true

	tables, err := cfg.TableRewriter()
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", tables.Rewrite("BlogPost"))

	columns, err := cfg.ColumnRewriter()
	require.NoError(t, err)
	assert.Equal(t, "blog_post", columns.Rewrite("BlogPost"))
}
