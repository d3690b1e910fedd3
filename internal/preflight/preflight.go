// Package preflight implements the blocking gate consulted before a run
// request is handed to the execution boundary.
package preflight

import (
	"context"
	"strings"

	"github.com/alexisbeaulieu97/simprep/internal/model"
)

// IssueSeverity classifies a pre-flight finding.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue is one pre-flight finding.
type Issue struct {
	Severity IssueSeverity
	Message  string
}

// Result is the outcome of validating a run request. OK is false when any
// error-severity issue is present; warnings alone do not block.
type Result struct {
	OK     bool
	Issues []Issue
}

// Messages returns the issue messages, bounded to at most limit entries.
// A limit <= 0 returns all messages.
func (r Result) Messages(limit int) []string {
	messages := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if limit > 0 && len(messages) == limit {
			break
		}
		messages = append(messages, issue.Message)
	}
	return messages
}

// Validator checks run requests for blocking configuration errors before
// submission. Known recipes are fixed at construction.
type Validator struct {
	recipes map[string]struct{}
}

// DefaultRecipes are the run recipes the launcher knows how to drive.
var DefaultRecipes = []string{"annual", "design-day", "sizing"}

// NewValidator creates a Validator accepting the given recipe ids. An empty
// list falls back to DefaultRecipes.
func NewValidator(recipes []string) *Validator {
	if len(recipes) == 0 {
		recipes = DefaultRecipes
	}
	known := make(map[string]struct{}, len(recipes))
	for _, id := range recipes {
		known[id] = struct{}{}
	}
	return &Validator{recipes: known}
}

// Validate inspects the request and returns every finding. It never panics
// and never mutates the request.
func (v *Validator) Validate(ctx context.Context, req model.RunRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var issues []Issue
	addError := func(message string) {
		issues = append(issues, Issue{Severity: SeverityError, Message: message})
	}
	addWarning := func(message string) {
		issues = append(issues, Issue{Severity: SeverityWarning, Message: message})
	}

	if strings.TrimSpace(req.RunName) == "" {
		addError("run name is required")
	}

	if err := CheckFileExists(req.IdfPath); err != nil {
		addError("model input file: " + err.Error())
	} else if !strings.HasSuffix(strings.ToLower(req.IdfPath), ".idf") {
		addWarning("model input file does not carry the .idf extension")
	}

	if err := CheckFileExists(req.EpwPath); err != nil {
		addError("weather file: " + err.Error())
	}

	if err := CheckExecutable(req.ExecutablePath); err != nil {
		addError("simulation engine: " + err.Error())
	}

	if req.RecipeID == "" {
		addError("recipe id is required")
	} else if _, known := v.recipes[req.RecipeID]; !known {
		addError("unknown recipe " + req.RecipeID)
	}

	ok := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			ok = false
			break
		}
	}

	return Result{OK: ok, Issues: issues}, nil
}
