package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-naming/internal/convention"
	"schema-naming/internal/model"
	"schema-naming/internal/rewrite"
)

func TestPrintReport(t *testing.T) {
	nr := convention.NewNameRewriter(rewrite.Func(rewrite.SnakeCase), convention.Options{})
	b := model.NewBuilder(convention.DefaultConventions(nr, nil))

	blog := b.Entity("Blog")
	b.AddProperty(blog, "Id")
	b.AddKey(blog, true, "Id")

	post := b.Entity("BlogPost")
	b.AddProperty(post, "Id")
	b.AddKey(post, true, "Id")
	b.AddProperty(post, "BlogId")
	b.AddForeignKey(post, blog, "BlogId")
	b.AddIndex(post, false, "BlogId")
	m := b.Finalize()

	var sb strings.Builder
	require.NoError(t, printReport(&sb, m))
	out := sb.String()

	assert.Contains(t, out, "Blog [standalone_table]")
	assert.Contains(t, out, "  table: blog")
	assert.Contains(t, out, "BlogPost [standalone_table]")
	assert.Contains(t, out, "  table: blog_post")
	assert.Contains(t, out, "  column BlogId: blog_id")
	assert.Contains(t, out, "  primary key: pk_blog_post")
	assert.Contains(t, out, "  foreign key -> Blog: fk_blog_post_blog_blog_id")
	assert.Contains(t, out, "  index: ix_blog_post_blog_id")
}
