// Package markdown renders Markdown to sanitized HTML and derives plain-text excerpts.
package markdown

import (
	"bytes"
	"fmt"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// FallbackHTML is returned in place of documents that fail to render
const FallbackHTML = "<p>Failed to render content</p>"

// DefaultCacheSize bounds the number of rendered documents kept in memory
const DefaultCacheSize = 50

var allowedElements = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "strong", "em", "u", "s",
	"a", "img",
	"ul", "ol", "li",
	"blockquote", "code", "pre",
	"table", "thead", "tbody", "tr", "th", "td",
	"hr", "div", "span",
}

var allowedAttributes = []string{
	"href", "title", "target", "rel",
	"src", "alt", "width", "height",
	"class", "id",
}

// Converter writes the HTML for a Markdown source to w
type Converter func(source []byte, w io.Writer) error

// Renderer converts Markdown to allow-listed HTML and memoizes results by source text
type Renderer struct {
	convert Converter
	policy  *bluemonday.Policy
	cache   *fifoCache
	log     zerolog.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithCacheSize sets the cache bound; non-positive values are ignored
func WithCacheSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.cache = newFIFOCache(size)
		}
	}
}

// WithConverter replaces the goldmark converter
func WithConverter(c Converter) Option {
	return func(r *Renderer) {
		r.convert = c
	}
}

// WithLogger sets the logger used to report render failures
func WithLogger(log zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = log.With().Str("component", "markdown").Logger()
	}
}

// New creates a Renderer using GitHub-flavored Markdown with hard line breaks
func New(opts ...Option) *Renderer {
	md := NewGoldmark()
	r := &Renderer{
		convert: func(source []byte, w io.Writer) error {
			return md.Convert(source, w)
		},
		policy: NewPolicy(),
		cache:  newFIFOCache(DefaultCacheSize),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewGoldmark builds the parser. Raw HTML is emitted so the sanitizer can strip it.
func NewGoldmark() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithUnsafe(),
		),
	)
}

// NewPolicy builds the allow-list sanitizer
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)
	p.AllowElements(allowedElements...)
	p.AllowAttrs(allowedAttributes...).Globally()
	return p
}

// Render returns sanitized HTML for source. It never fails: on error the
// fallback fragment is returned and nothing is cached.
func (r *Renderer) Render(source string) string {
	if cached, ok := r.cache.get(source); ok {
		return cached
	}

	html, err := r.render(source)
	if err != nil {
		r.log.Warn().Err(err).Int("source_length", len(source)).Msg("Markdown render failed")
		return FallbackHTML
	}

	r.cache.put(source, html)
	return html
}

func (r *Renderer) render(source string) (html string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render panicked: %v", p)
		}
	}()

	var buf bytes.Buffer
	if err := r.convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Len returns the number of cached documents
func (r *Renderer) Len() int {
	return r.cache.len()
}

// ClearCache drops every cached document
func (r *Renderer) ClearCache() {
	r.cache.clear()
}
