package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	simpreperrors "github.com/alexisbeaulieu97/simprep/pkg/errors"
)

// ParseProject loads a project file from disk, validates it, and returns the
// resulting model.
func ParseProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, simpreperrors.NewParseError(path, err)
	}

	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, simpreperrors.NewParseError(path, err)
	}

	if err := ValidateProject(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

// ValidateProject performs structural validation of the project aggregate.
// Semantic completeness (missing sections, empty lists) is intentionally not
// checked here; that is the readiness evaluator's territory and is reported
// as checklist state rather than an error.
func ValidateProject(project *Project) error {
	if project == nil {
		return simpreperrors.NewValidationError("", "project is nil", nil)
	}

	err := validatorInstance().Struct(project)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		field := strings.TrimPrefix(first.Namespace(), "Project.")
		return simpreperrors.NewValidationError(field, describeRule(first), err)
	}

	return simpreperrors.NewValidationError("", err.Error(), err)
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "latitude_range":
		return "must be between -90 and 90"
	case "longitude_range":
		return "must be between -180 and 180"
	case "timezone_range":
		return "must be between -12 and 14"
	case "finite":
		return "must be a finite number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
