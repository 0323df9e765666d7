package analyzer

import (
	stderrors "errors" // Standard errors package
	"log/slog"
	"unicode/utf8"

	"github.com/invopop/jsonschema"
	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/errors" // Custom errors package
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/mcncl/jsonlens/internal/query"
	"github.com/mcncl/jsonlens/internal/schema"
)

// ValidateIndent is the indent used for ValidationResult.Formatted.
const ValidateIndent = 2

// Analyzer runs read-only traversals over parsed JSON documents. It holds
// no per-document state and is safe for concurrent use.
type Analyzer struct {
	// config holds limits and output settings
	config *config.Config
	// formatter serializes value trees
	formatter *formatter.Formatter
	logger    *slog.Logger
}

// NewAnalyzer creates a new Analyzer instance with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{
		config:    cfg,
		formatter: formatter.NewFormatter(),
		logger:    slog.Default(),
	}
}

// WithLogger sets the logger used for debug records and returns a.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *config.Config {
	return a.config
}

func (a *Analyzer) parse(text string) (models.Value, error) {
	v, err := parser.ParseString(text, a.config.Limits.MaxDepth)
	if err != nil {
		a.logger.Debug("parse failed", "error", err)
		return models.Value{}, err
	}
	a.logger.Debug("parsed document", "bytes", len(text), "root", v.TypeName())
	return v, nil
}

// Validate parses text and reports whether it is both syntactically valid
// and free of structural issues. A parse failure is reported in the result,
// never returned as an error.
func (a *Analyzer) Validate(text string) models.ValidationResult {
	result := models.ValidationResult{
		Errors: []string{},
		Size:   utf8.RuneCountInString(text),
	}

	v, err := a.parse(text)
	if err != nil {
		result.Errors = append(result.Errors, parseFailure(err))
		return result
	}

	issues, err := a.Scan(v, a.config.Scan.RootLabel)
	if err != nil {
		result.Errors = append(result.Errors, parseFailure(err))
		return result
	}
	for _, issue := range issues {
		result.Errors = append(result.Errors, issue.String())
	}

	depth, err := a.Depth(v)
	if err != nil {
		result.Errors = append(result.Errors, parseFailure(err))
		return result
	}

	formatted := a.formatter.Format(v, ValidateIndent)
	result.Formatted = &formatted
	result.Depth = depth
	result.IsValid = len(result.Errors) == 0

	a.logger.Debug("validated document", "issues", len(issues), "depth", depth, "valid", result.IsValid)
	return result
}

// parseFailure renders a parse or depth error for ValidationResult.Errors.
func parseFailure(err error) string {
	msg, ok := errors.SyntaxMessage(err)
	if !ok {
		msg = err.Error()
	}
	if stderrors.Is(err, errors.ErrDepthExceeded) {
		return "Depth error: " + msg
	}
	return "Syntax error: " + msg
}

// Format re-serializes text with indent spaces per level.
func (a *Analyzer) Format(text string, indent int) (string, error) {
	v, err := a.parse(text)
	if err != nil {
		return "", errors.NewFormatError("failed to parse JSON", err)
	}
	return a.formatter.Format(v, indent), nil
}

// Minify re-serializes text without insignificant whitespace.
func (a *Analyzer) Minify(text string) (string, error) {
	v, err := a.parse(text)
	if err != nil {
		return "", errors.NewFormatError("failed to parse JSON", err)
	}
	return a.formatter.Minify(v), nil
}

// Analyze collects key paths, per-path types and array lengths of text.
// Size is the length of the minified document, not of text.
func (a *Analyzer) Analyze(text string) (models.Analysis, error) {
	v, err := a.parse(text)
	if err != nil {
		return models.Analysis{}, errors.NewAnalysisError("failed to parse JSON", err)
	}

	analysis, err := a.Collect(v)
	if err != nil {
		return models.Analysis{}, errors.NewAnalysisError("failed to analyze document", err)
	}
	depth, err := a.Depth(v)
	if err != nil {
		return models.Analysis{}, errors.NewAnalysisError("failed to analyze document", err)
	}
	analysis.Depth = depth
	analysis.Size = utf8.RuneCountInString(a.formatter.Minify(v))

	a.logger.Debug("analyzed document", "keys", len(analysis.Keys), "depth", depth, "size", analysis.Size)
	return analysis, nil
}

// GenerateSchema infers a shallow JSON Schema from text.
func (a *Analyzer) GenerateSchema(text string) (*jsonschema.Schema, error) {
	v, err := a.parse(text)
	if err != nil {
		return nil, errors.NewSchemaError("failed to parse JSON", err)
	}

	gen := schema.NewGenerator(schema.Options{
		Title:    a.config.Schema.Title,
		Draft:    a.config.Schema.Draft,
		MaxDepth: a.config.Limits.MaxDepth,
	})
	s, err := gen.Generate(v)
	if err != nil {
		return nil, errors.NewSchemaError("failed to generate schema", err)
	}
	return s, nil
}

// FindByPath resolves a dotted path in text. A missing value is reported
// with found=false, not an error; only unparsable text is an error.
func (a *Analyzer) FindByPath(text, path string) (value models.Value, found bool, err error) {
	v, err := a.parse(text)
	if err != nil {
		return models.Value{}, false, errors.NewPathError("failed to parse JSON", err)
	}

	value, found, err = a.Resolve(v, path)
	if err != nil {
		return models.Value{}, false, errors.NewPathError("failed to resolve path", err)
	}
	a.logger.Debug("resolved path", "path", path, "found", found)
	return value, found, nil
}

// Render serializes v at the configured indent.
func (a *Analyzer) Render(v models.Value) string {
	return a.formatter.Format(v, a.config.Format.Indent)
}

// Query evaluates a gjson path expression against the parsed document,
// re-serialized compactly so repeated keys resolve as they do for
// FindByPath. Raw results are therefore minified.
func (a *Analyzer) Query(text, expr string) (query.Result, error) {
	v, err := a.parse(text)
	if err != nil {
		return query.Result{}, errors.NewQueryError("failed to parse JSON", err)
	}
	res := query.Run(a.formatter.Minify(v), expr)
	a.logger.Debug("ran query", "expr", expr, "found", res.Found)
	return res, nil
}
