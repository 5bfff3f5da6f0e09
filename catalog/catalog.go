// Package catalog indexes the known documentation providers so they can be
// listed and searched from the command line.
//
// Each provider is registered as a tool in a tooldiscovery index under the
// "docs" namespace, with a tooldoc entry naming the environment variable its
// API key is read from.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/snippetexec/config"
	"github.com/jonwraymond/snippetexec/snippet"
)

// Namespace is the index namespace providers are registered under.
const Namespace = "docs"

// ErrProviderNotFound is returned when a provider is not in the catalog.
var ErrProviderNotFound = errors.New("provider not found")

// Entry describes a cataloged provider.
type Entry struct {
	Name        string
	DisplayName string
	EnvName     string
	Description string
	Document    string
}

// Catalog is a searchable set of providers.
type Catalog struct {
	idx       index.Index
	docs      tooldoc.Store
	providers map[string]config.Provider
}

// New builds a catalog from provider declarations.
func New(providers map[string]config.Provider) (*Catalog, error) {
	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	docs := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})

	c := &Catalog{
		idx:       idx,
		docs:      docs,
		providers: make(map[string]config.Provider, len(providers)),
	}
	for _, name := range config.ProviderNames(providers) {
		p := providers[name]
		if err := idx.RegisterTool(providerTool(name, p), model.NewLocalBackend(name)); err != nil {
			return nil, fmt.Errorf("register provider %s: %w", name, err)
		}
		entry := tooldoc.DocEntry{
			Summary: describe(name, p),
			Notes:   fmt.Sprintf("API key is read from %s and exposed to snippets under the same name.", p.EnvName),
		}
		if err := docs.RegisterDoc(toolID(name), entry); err != nil {
			return nil, fmt.Errorf("register provider doc %s: %w", name, err)
		}
		c.providers[name] = p
	}
	return c, nil
}

// Names returns provider names sorted for deterministic output.
func (c *Catalog) Names() []string {
	return config.ProviderNames(c.providers)
}

// Entries returns every provider, sorted by name.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, c.entry(name))
	}
	return out
}

// Describe returns the entry for a provider.
func (c *Catalog) Describe(name string) (Entry, error) {
	if _, ok := c.providers[name]; !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	e := c.entry(name)
	doc, err := c.docs.DescribeTool(toolID(name), tooldoc.DetailFull)
	if err != nil {
		return Entry{}, fmt.Errorf("describe provider %s: %w", name, err)
	}
	if doc.Summary != "" {
		e.Description = doc.Summary
	}
	return e, nil
}

// Search returns providers matching query, best match first. An empty query
// returns every provider. A limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		entries := c.Entries()
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		return entries, nil
	}

	if limit <= 0 {
		limit = len(c.providers)
	}
	results, err := c.idx.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	out := make([]Entry, 0, len(results))
	for _, r := range results {
		if r.Namespace != "" && r.Namespace != Namespace {
			continue
		}
		name := r.Name
		if _, ok := c.providers[name]; !ok {
			continue
		}
		out = append(out, c.entry(name))
	}
	return out, nil
}

func (c *Catalog) entry(name string) Entry {
	p := c.providers[name]
	return Entry{
		Name:        name,
		DisplayName: DisplayName(name),
		EnvName:     p.EnvName,
		Description: describe(name, p),
		Document:    name + ".txt",
	}
}

// DisplayName title-cases a provider name for display, e.g.
// "google-gemini" becomes "Google Gemini".
func DisplayName(name string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.Und).String(spaced)
}

func describe(name string, p config.Provider) string {
	if p.Description != "" {
		return p.Description
	}
	return DisplayName(name) + " API documentation snippets"
}

func toolID(name string) string {
	return Namespace + ":" + name
}

func providerTool(name string, p config.Provider) model.Tool {
	langs := snippet.Languages()
	enum := make([]any, len(langs))
	tags := []string{"docs", "snippets", strings.ToLower(p.EnvName)}
	for i, l := range langs {
		enum[i] = l.String()
		tags = append(tags, l.String())
	}

	return model.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: describe(name, p),
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"language": map[string]any{
						"type": "string",
						"enum": enum,
					},
				},
			},
		},
		Namespace: Namespace,
		Tags:      model.NormalizeTags(tags),
	}
}
