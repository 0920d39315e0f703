// Package jsparse parses JavaScript and TypeScript source into the jsast
// construct model using tree-sitter grammars. It deliberately lowers rather
// than mirrors the concrete syntax tree: constructs the semantic analyses
// care about get precise jsast shapes, everything else becomes an Unknown
// node that the analyses treat conservatively.
package jsparse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/typescript"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// Sentinel errors for parser operations.
var (
	ErrUnsupportedFile = errors.New("no parser for file extension")
	ErrUnknownLanguage = errors.New("unknown language")
	errNoRootNode      = errors.New("parse produced no root node")
	errPoolType        = errors.New("parser pool returned unexpected type")
)

// Language names a supported grammar.
type Language string

// Supported languages.
const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
)

// extensions maps file extensions to their language. TSX/JSX-heavy dialects
// beyond .jsx are not registered; .jsx parses with the javascript grammar.
var extensions = map[string]Language{
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
}

// DetectLanguage returns the language for a filename by extension.
func DetectLanguage(filename string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := extensions[ext]

	return lang, ok
}

// LanguageByName resolves a user-supplied language override.
func LanguageByName(name string) (Language, bool) {
	switch strings.ToLower(name) {
	case "javascript", "js":
		return LangJavaScript, true
	case "typescript", "ts":
		return LangTypeScript, true
	default:
		return "", false
	}
}

// Parser parses source files into jsast programs. Safe for concurrent use;
// tree-sitter parser instances are pooled per language.
type Parser struct {
	pools map[Language]*sync.Pool
}

// NewParser returns a Parser with both grammars registered.
func NewParser() *Parser {
	languages := map[Language]*sitter.Language{
		LangJavaScript: sitter.NewLanguage(javascript.GetLanguage()),
		LangTypeScript: sitter.NewLanguage(typescript.GetLanguage()),
	}

	pools := make(map[Language]*sync.Pool, len(languages))
	for name, lang := range languages {
		pools[name] = &sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		}
	}

	return &Parser{pools: pools}
}

// Supported reports whether the filename maps to a registered grammar.
func (p *Parser) Supported(filename string) bool {
	_, ok := DetectLanguage(filename)

	return ok
}

// Parse parses content, selecting the grammar from the filename extension.
func (p *Parser) Parse(ctx context.Context, filename string, content []byte) (*jsast.Program, error) {
	lang, ok := DetectLanguage(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}

	return p.ParseAs(ctx, lang, content)
}

// ParseAs parses content with the given language's grammar.
func (p *Parser) ParseAs(ctx context.Context, lang Language, content []byte) (*jsast.Program, error) {
	pool, ok := p.pools[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("jsparse: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	low := &lowerer{src: content}
	program := low.lowerProgram(root)

	slog.Debug("parsed source", "language", string(lang), "bytes", len(content), "statements", len(program.Body))

	return program, nil
}
