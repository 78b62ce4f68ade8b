// Package form validates operator-entered form values against declarative
// JSON Schemas.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const candidateSchemaURL = "hirebuddy://schemas/candidate.json"

const candidateSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name":         {"type": "string", "minLength": 3},
		"email":        {"type": "string", "format": "email", "pattern": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"},
		"curr_company": {"type": "string", "minLength": 2}
	},
	"required": ["name", "email", "curr_company"]
}`

// Field keys, shared by the schema, the HTML inputs and Errors.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCurrCompany = "curr_company"
)

var candidate = mustCompile(candidateSchemaURL, candidateSchema)

// messages[field] = {required, invalid}
var messages = map[string][2]string{
	FieldName:        {"Name is required", "Name must be at least 3 characters"},
	FieldEmail:       {"Email is required", "Invalid email format"},
	FieldCurrCompany: {"Current company is required", "Company name must be at least 2 characters"},
}

// Candidate holds the résumé upload form.
type Candidate struct {
	Name        string
	Email       string
	CurrCompany string
}

// Trimmed returns a copy with surrounding whitespace removed.
func (c Candidate) Trimmed() Candidate {
	return Candidate{
		Name:        strings.TrimSpace(c.Name),
		Email:       strings.TrimSpace(c.Email),
		CurrCompany: strings.TrimSpace(c.CurrCompany),
	}
}

func (c Candidate) value(field string) string {
	switch field {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldCurrCompany:
		return c.CurrCompany
	}
	return ""
}

// Errors maps a field key to its message. An empty Errors is valid.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

// Get returns the message for field, if any.
func (e Errors) Get(field string) string { return e[field] }

// ValidateCandidate runs the schema against the trimmed values.
func ValidateCandidate(c Candidate) Errors {
	c = c.Trimmed()
	instance := map[string]any{
		FieldName:        c.Name,
		FieldEmail:       c.Email,
		FieldCurrCompany: c.CurrCompany,
	}

	errs := Errors{}
	for _, field := range failedFields(candidate.Validate(instance)) {
		msg, ok := messages[field]
		if !ok {
			continue
		}
		if c.value(field) == "" {
			errs[field] = msg[0]
		} else {
			errs[field] = msg[1]
		}
	}
	return errs
}

// failedFields lists the top-level properties named by a validation error tree.
func failedFields(err error) []string {
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.InstanceLocation) > 0 && !seen[e.InstanceLocation[0]] {
			seen[e.InstanceLocation[0]] = true
			out = append(out, e.InstanceLocation[0])
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}

func mustCompile(url, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("form: parse schema %s: %v", url, err))
	}
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("form: add schema %s: %v", url, err))
	}
	return c.MustCompile(url)
}
