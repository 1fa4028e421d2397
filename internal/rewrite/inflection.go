package rewrite

import (
	"github.com/jinzhu/inflection"
)

// Pluralizer decorates a Rewriter so that table names come out plural
// ("BlogPost" → "blog_posts" under the snake_case convention). It is applied
// to table names only; column, key and index names go through the inner
// rewriter untouched.
type Pluralizer struct {
	inner     Rewriter
	overrides map[string]string
}

// NewPluralizer wraps inner with pluralization. Overrides map an already
// rewritten name to a custom plural ("person": "people") and are consulted
// before the inflection library.
func NewPluralizer(inner Rewriter, overrides map[string]string) *Pluralizer {
	return &Pluralizer{inner: inner, overrides: overrides}
}

// Rewrite applies the inner rewriter and pluralizes the result.
func (p *Pluralizer) Rewrite(name string) string {
	rewritten := p.inner.Rewrite(name)
	if rewritten == "" {
		return rewritten
	}
	if override, ok := p.overrides[rewritten]; ok {
		return override
	}
	return inflection.Plural(rewritten)
}
