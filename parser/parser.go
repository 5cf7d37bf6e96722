package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasclientgen"
	"github.com/erraggy/oasclientgen/oaserrors"
)

// DefaultMaxFileSize is the largest document accepted when no limit is set.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Parser loads OpenAPI 3.x documents from files, URLs, readers or bytes.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a pooled client from go-cleanhttp with a 30-second timeout is used.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent:   oasclientgen.UserAgent(),
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed document and metadata.
// Callers should treat it as read-only after parsing.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// When the source was not a file path, it is set to the name of the
	// method and ends in '.yaml' or '.json' based on the detected format.
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the declared openapi version string (e.g., "3.0.3")
	Version string
	// Document is the order-preserving document
	Document *Document
	// Warnings contains non-fatal observations about the document
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse parses an OpenAPI document from a file path or URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var (
		data   []byte
		format SourceFormat
		err    error
	)

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = p.readFile(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	res.SourcePath = specPath
	res.LoadTime = loadTime
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses an OpenAPI document from an io.Reader.
// SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: "reader", Message: "failed to read data", Cause: err}
	}
	res, err := p.parseBytes(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses an OpenAPI document from a byte slice.
// SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) parseBytes(data []byte, source string) (*ParseResult, error) {
	if int64(len(data)) > p.maxSize() {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("document exceeds maximum size of %s", FormatBytes(p.maxSize())),
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "invalid YAML or JSON", Cause: err}
	}

	doc, err := decodeDocument(&root)
	if err != nil {
		var parseErr *oaserrors.ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = source
		}
		return nil, err
	}
	if err := checkVersion(doc.OpenAPI); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: err.Error()}
	}

	res := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		Version:      doc.OpenAPI,
		Document:     doc,
		SourceSize:   int64(len(data)),
	}
	if doc.Paths.Len() == 0 {
		res.Warnings = append(res.Warnings, "document defines no paths")
	}
	if doc.Info == nil {
		res.Warnings = append(res.Warnings, "document has no info object")
	}

	p.log().Debug("parsed document",
		"source", source,
		"version", doc.OpenAPI,
		"paths", doc.Paths.Len(),
		"operations", doc.OperationCount(),
		"schemas", doc.SchemaCount())
	return res, nil
}

func checkVersion(v string) error {
	if v == "" {
		return errors.New("missing openapi version field")
	}
	if !strings.HasPrefix(v, "3.") {
		return fmt.Errorf("unsupported OpenAPI version %q (only 3.x is supported)", v)
	}
	return nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	if info.Size() > p.maxSize() {
		return nil, &oaserrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("file size %s exceeds maximum of %s", FormatBytes(info.Size()), FormatBytes(p.maxSize())),
		}
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = 30 * time.Second
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", &oaserrors.ParseError{Path: urlStr, Message: "failed to create request", Cause: err}
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oasclientgen.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	p.log().Debug("fetching document", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", &oaserrors.ParseError{Path: urlStr, Message: "failed to fetch URL", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &oaserrors.ParseError{Path: urlStr, Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxSize()+1))
	if err != nil {
		return nil, "", &oaserrors.ParseError{Path: urlStr, Message: "failed to read response body", Cause: err}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' or '[' as JSON.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	if parsedURL, err := url.Parse(urlStr); err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}

	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(contentType) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}
