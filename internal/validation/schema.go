package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

const navigationSchemaURL = "navigation.schema.json"

//go:embed navigation.schema.json
var navigationSchema []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError surfaces validation issues with their JSON pointer locations.
type DocumentValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// NavigationSchema returns the embedded JSON schema describing the
// navigation document.
func NavigationSchema() []byte {
	return bytes.Clone(navigationSchema)
}

// ValidateNavigationJSON checks an encoded navigation document against the
// embedded schema.
func ValidateNavigationJSON(encoded []byte) error {
	schema, err := navigationValidator()
	if err != nil {
		return err
	}

	var document any
	if err := json.Unmarshal(encoded, &document); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := schema.Validate(document); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &DocumentValidationError{Issues: collectValidationIssues(validationErr), Cause: err}
		}
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return nil
}

// ValidateNavigation encodes value as JSON and validates it.
func ValidateNavigation(value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return ValidateNavigationJSON(encoded)
}

func navigationValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(navigationSchemaURL, bytes.NewReader(navigationSchema)); err != nil {
			compileErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(navigationSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, compileErr)
		}
	})
	return compiledSchema, compileErr
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
