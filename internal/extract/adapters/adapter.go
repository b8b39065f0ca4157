package adapters

import (
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
	"golang.org/x/net/html"
)

// Adapter defines the interface for source-specific record extractors.
// Each known page shape (police bulletin, cold-case archive) gets its own
// parsing strategy; the registry picks one by URL.
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL/content
	CanHandle(url string, contentType string) bool

	// ExtractRecords extracts case records from the HTML document. The
	// caller assigns the source label afterward; adapters only parse.
	ExtractRecords(doc *html.Node, url string) (Result, error)
}

// Result is one adapter's extraction outcome. Candidates counts the blocks
// or rows considered, so callers can report how many failed validity.
type Result struct {
	Records    []model.CaseRecord
	Candidates int
}

// Registry manages source adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters registered
func NewRegistry(cfg model.ExtractConfig) *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewBulletinAdapter(cfg))
	registry.Register(NewArchiveAdapter(cfg))

	// Unknown pages get bulletin-style parsing
	registry.generic = NewGenericAdapter(cfg)

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given URL and content type
func (r *Registry) FindAdapter(url string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(url, contentType) {
			return adapter
		}
	}

	return r.generic
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// ParseHTML parses an HTML string into a node tree
func (b *BaseAdapter) ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}
