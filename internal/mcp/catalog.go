package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

// allowedMethods is the whitelist of HTTP methods for catalog tools.
var allowedMethods = map[string]bool{
	http.MethodGet: true, http.MethodPost: true, http.MethodPut: true, http.MethodDelete: true,
}

// Parameter locations.
const (
	InPath  = "path"
	InQuery = "query"
	InBody  = "body"
)

// Parameter types.
const (
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
)

var placeholderRe = regexp.MustCompile(`\{([^{}/]+)\}`)

// CatalogTool describes one tool and the backend call it makes.
type CatalogTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	Params      []CatalogParam `json:"params"`
	Result      string         `json:"result"`

	call toolCall
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // integer, number, string
	Description string `json:"description"`
	Required    bool   `json:"required"`
	In          string `json:"in"`             // path, query, body
	Wire        string `json:"wire,omitempty"` // backend name when it differs from Name
}

// WireName returns the name the backend expects for this parameter.
func (p CatalogParam) WireName() string {
	if p.Wire != "" {
		return p.Wire
	}
	return p.Name
}

// toolCall binds validated arguments to one resource client operation.
type toolCall func(ctx context.Context, svc *restaurant.Service, args arguments) (interface{}, error)

// ReadOnly reports whether the tool only reads backend state.
func (ct CatalogTool) ReadOnly() bool {
	return ct.Method == http.MethodGet
}

// Destructive reports whether the tool removes backend state.
func (ct CatalogTool) Destructive() bool {
	return ct.Method == http.MethodDelete
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Method == "" {
		return fmt.Errorf("tool %q has empty method", ct.Name)
	}
	if !allowedMethods[ct.Method] {
		return fmt.Errorf("tool %q has unsupported method %q", ct.Name, ct.Method)
	}
	if ct.Path == "" {
		return fmt.Errorf("tool %q has empty path", ct.Name)
	}
	if !strings.HasPrefix(ct.Path, "/") {
		return fmt.Errorf("tool %q has invalid path %q (must start with /)", ct.Name, ct.Path)
	}
	if strings.Contains(ct.Path, "..") {
		return fmt.Errorf("tool %q has invalid path %q (contains ..)", ct.Name, ct.Path)
	}

	declared := map[string]bool{}
	wire := map[string]bool{}
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		switch p.In {
		case InPath, InQuery, InBody:
		default:
			return fmt.Errorf("tool %q parameter %q has invalid location %q", ct.Name, p.Name, p.In)
		}
		switch p.Type {
		case TypeInteger, TypeNumber, TypeString:
		default:
			return fmt.Errorf("tool %q parameter %q has invalid type %q", ct.Name, p.Name, p.Type)
		}
		if p.In == InPath {
			declared[p.Name] = true
		}
		key := p.In + ":" + p.WireName()
		if wire[key] {
			return fmt.Errorf("tool %q sends %s %q twice", ct.Name, p.In, p.WireName())
		}
		wire[key] = true
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(ct.Path, -1) {
		if !declared[m[1]] {
			return fmt.Errorf("tool %q path placeholder {%s} has no path parameter", ct.Name, m[1])
		}
	}
	if ct.call == nil {
		return fmt.Errorf("tool %q is not bound to an operation", ct.Name)
	}
	return nil
}

// ValidateCatalog checks every entry and rejects duplicate names.
func ValidateCatalog(catalog []CatalogTool) error {
	var errs []error
	seen := make(map[string]bool, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[ct.Name] {
			errs = append(errs, fmt.Errorf("duplicate tool %q", ct.Name))
			continue
		}
		seen[ct.Name] = true
	}
	return errors.Join(errs...)
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(ct.Description),
		mcp.WithReadOnlyHintAnnotation(ct.ReadOnly()),
		mcp.WithDestructiveHintAnnotation(ct.Destructive()),
		mcp.WithIdempotentHintAnnotation(ct.Method != http.MethodPost),
	}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case TypeInteger, TypeNumber:
		return mcp.WithNumber(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}
