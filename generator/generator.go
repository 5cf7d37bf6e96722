package generator

import (
	"fmt"
	"go/token"
	"strings"
	"time"

	"github.com/erraggy/oasclientgen/bundler"
	"github.com/erraggy/oasclientgen/extractor"
	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/options"
	"github.com/erraggy/oasclientgen/internal/severity"
	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/oaserrors"
	"github.com/erraggy/oasclientgen/parser"
)

// DefaultPackageName is the package of the generated client.go.
const DefaultPackageName = "api"

// DefaultRuntimeImport is the import path of the runtime the generated code
// depends on.
const DefaultRuntimeImport = "github.com/erraggy/oasclientgen/clientrt"

// ClientFileName is the name of the shared client file.
const ClientFileName = "client.go"

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates substitutions and renames made to keep going
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates validation errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates features that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the slash-separated path relative to the output directory
	// (e.g., "client.go", "pet/pet.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating a client from an OpenAPI document
type GenerateResult struct {
	// Files contains all generated files, client.go first
	Files []GeneratedFile
	// SourcePath is where the document was read from
	SourcePath string
	// SourceVersion is the declared openapi version string
	SourceVersion string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// PackageName is the Go package name of client.go
	PackageName string
	// Policy is the name of the type resolution policy that was applied
	Policy string
	// Modules holds the bundled modules in emission order
	Modules []*model.ModuleDescriptor
	// Issues contains all generation issues in the order they were found
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// GeneratedTypes is the number of types emitted across all modules
	GeneratedTypes int
	// GeneratedOperations is the number of methods emitted
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// FileMap returns the generated files keyed by relative file name.
func (r *GenerateResult) FileMap() map[string]string {
	m := make(map[string]string, len(r.Files))
	for _, f := range r.Files {
		m[f.Name] = string(f.Content)
	}
	return m
}

// Module returns the bundled module named name, or nil.
func (r *GenerateResult) Module(name string) *model.ModuleDescriptor {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Generator turns an OpenAPI document into a typed client: one shared
// client.go plus one package per module.
type Generator struct {
	// PackageName is the Go package name of client.go
	// If empty, defaults to "api"
	PackageName string

	// Policy decides what happens to underspecified schemas, dangling
	// references and method name collisions.
	// If nil, extractor.StrictPolicy is used.
	Policy extractor.TypeResolutionPolicy

	// ErrorTypeName is the sentinel error type copied into every module.
	// Default: "Error"
	ErrorTypeName string

	// RuntimeImport is the import path of the clientrt package used by the
	// generated code
	RuntimeImport string

	// Format runs gofmt and goimports over every file
	// Default: true
	Format bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// DryRun stops after bundling. The result describes the modules but
	// holds no files.
	DryRun bool

	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string

	// Logger receives debug output from every stage
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName:   DefaultPackageName,
		Policy:        extractor.StrictPolicy{},
		ErrorTypeName: bundler.DefaultErrorTypeName,
		RuntimeImport: DefaultRuntimeImport,
		Format:        true,
		IncludeInfo:   true,
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	packageName   string
	policy        extractor.TypeResolutionPolicy
	errorTypeName string
	runtimeImport string
	format        bool
	includeInfo   bool
	dryRun        bool
	userAgent     string
	logger        parser.Logger
}

// GenerateWithOptions generates a client from an OpenAPI document using
// functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithPackageName("petstore"),
//	    generator.WithPolicy("lenient"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName:   cfg.packageName,
		Policy:        cfg.policy,
		ErrorTypeName: cfg.errorTypeName,
		RuntimeImport: cfg.runtimeImport,
		Format:        cfg.format,
		IncludeInfo:   cfg.includeInfo,
		DryRun:        cfg.dryRun,
		UserAgent:     cfg.userAgent,
		Logger:        cfg.logger,
	}

	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	return g.GenerateParsed(*cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName:   DefaultPackageName,
		policy:        extractor.StrictPolicy{},
		errorTypeName: bundler.DefaultErrorTypeName,
		runtimeImport: DefaultRuntimeImport,
		format:        true,
		includeInfo:   true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("generator",
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithParsed", Set: cfg.parsed != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithPackageName specifies the Go package name of client.go
// Default: "api"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if err := checkPackageName(name); err != nil {
			return err
		}
		cfg.packageName = name
		return nil
	}
}

// WithPolicy selects the type resolution policy by name ("strict" or "lenient").
// Default: "strict"
func WithPolicy(name string) Option {
	return func(cfg *generateConfig) error {
		p, err := extractor.PolicyByName(name)
		if err != nil {
			return err
		}
		cfg.policy = p
		return nil
	}
}

// WithStrict selects the strict policy when enabled and the lenient one otherwise.
func WithStrict(enabled bool) Option {
	return func(cfg *generateConfig) error {
		if enabled {
			cfg.policy = extractor.StrictPolicy{}
		} else {
			cfg.policy = extractor.LenientPolicy{}
		}
		return nil
	}
}

// WithErrorTypeName sets the sentinel error type copied into every module.
// Default: "Error"
func WithErrorTypeName(name string) Option {
	return func(cfg *generateConfig) error {
		if strings.TrimSpace(name) == "" {
			return &oaserrors.ConfigError{Option: "WithErrorTypeName", Message: "error type name cannot be empty"}
		}
		cfg.errorTypeName = name
		return nil
	}
}

// WithRuntimeImport sets the import path of the clientrt package.
func WithRuntimeImport(path string) Option {
	return func(cfg *generateConfig) error {
		if strings.TrimSpace(path) == "" || strings.ContainsAny(path, " \t\"`") {
			return &oaserrors.ConfigError{Option: "WithRuntimeImport", Value: path, Message: "invalid import path"}
		}
		cfg.runtimeImport = path
		return nil
	}
}

// WithFormat enables or disables gofmt/goimports processing of the output
// Default: true
func WithFormat(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.format = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithDryRun skips emission; only modules, counts and issues are filled in.
func WithDryRun(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.dryRun = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the structured logger for every stage.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

func checkPackageName(name string) error {
	if name == "" {
		return &oaserrors.ConfigError{Option: "WithPackageName", Message: "package name cannot be empty"}
	}
	if !token.IsIdentifier(name) || name == "_" {
		return &oaserrors.ConfigError{Option: "WithPackageName", Value: name, Message: "not a valid Go package name"}
	}
	return nil
}

// Generate generates a client from an OpenAPI document file or URL
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}
	p.Logger = g.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates a client from an already-parsed document. It
// runs extraction, grouping, bundling and emission in that order. Under the
// strict policy any schema or reference failure returns an error and no files.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()
	if parseResult.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result has no document"}
	}

	result := &GenerateResult{
		Files:         make([]GeneratedFile, 0),
		SourcePath:    parseResult.SourcePath,
		SourceVersion: parseResult.Version,
		SourceFormat:  parseResult.SourceFormat,
		PackageName:   g.PackageName,
		Issues:        make([]GenerateIssue, 0),
		LoadTime:      parseResult.LoadTime,
		SourceSize:    parseResult.SourceSize,
	}
	if result.PackageName == "" {
		result.PackageName = DefaultPackageName
	}
	if err := checkPackageName(result.PackageName); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	policy := g.Policy
	if policy == nil {
		policy = extractor.StrictPolicy{}
	}
	result.Policy = policy.Name()
	log := parser.OrNop(g.Logger)

	for _, w := range parseResult.Warnings {
		result.Issues = append(result.Issues, GenerateIssue{
			Path:     parseResult.SourcePath,
			Message:  w,
			Severity: SeverityWarning,
		})
	}

	extracted, err := extractor.New(extractor.WithPolicy(policy), extractor.WithLogger(log)).Extract(parseResult.Document)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Issues = append(result.Issues, extracted.Issues...)

	modules := bundler.Group(extracted.Operations)
	bundled, err := bundler.Bundle(modules, extracted.Pool, bundler.Options{
		ErrorTypeName: g.ErrorTypeName,
		Policy:        policy,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Issues = append(result.Issues, bundled.Issues...)
	result.Modules = bundled.Modules

	if g.DryRun {
		for _, m := range result.Modules {
			result.GeneratedTypes += m.Types.Len()
			result.GeneratedOperations += len(m.Operations)
		}
	} else {
		e := &emitter{
			g:             g,
			doc:           parseResult.Document,
			result:        result,
			runtimeImport: g.runtimeImport(),
		}
		if err := e.emit(); err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
	}

	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	log.Debug("generation complete",
		"policy", result.Policy,
		"modules", len(result.Modules),
		"files", len(result.Files),
		"types", result.GeneratedTypes,
		"operations", result.GeneratedOperations)

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

func (g *Generator) runtimeImport() string {
	if g.RuntimeImport == "" {
		return DefaultRuntimeImport
	}
	return g.RuntimeImport
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	counts := issues.Tally(result.Issues)
	result.InfoCount = counts.Info
	result.WarningCount = counts.Warning
	result.CriticalCount = counts.Critical
}
