/*
errors.go Error taxonomy shared by the loaders, the calculation engine and
the DER registry. Each failure kind is a distinct type so callers can
discriminate with errors.As and render a specific remediation message.
*/

package model

import (
	"fmt"
	"strings"
)

// SchemaError reports malformed structured input: a missing required field,
// an unrecognized record type, or an unparseable value.
type SchemaError struct {
	Record  string
	Missing []string
	Detail  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s record missing required fields: %s", e.Record, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s record: %s", e.Record, e.Detail)
}

// DuplicateIDError reports an id collision within one load.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q", e.Kind, e.ID)
}

// ReferentialIntegrityError reports a line or transformer referencing a bus
// that does not exist in the model.
type ReferentialIntegrityError struct {
	Kind       string
	ID         string
	Field      string
	MissingBus string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %q references unknown %s %q", e.Kind, e.ID, e.Field, e.MissingBus)
}

// UnsupportedFormatError reports a format tag outside {csv, json, dss}.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported model format %q", e.Format)
}

// ExternalSolverError carries a non-zero error code reported by the
// external network solver, with the solver's own description.
type ExternalSolverError struct {
	Code        int
	Description string
}

func (e *ExternalSolverError) Error() string {
	return fmt.Sprintf("network solver error %d: %s", e.Code, e.Description)
}

// InvalidConfigError reports a numeric-range or required-value violation in
// a DER configuration or a fault-study parameter set.
type InvalidConfigError struct {
	Field  string
	Detail string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Detail)
}

// InvalidEnclosureError reports an enclosure type outside the closed set
// {VCB, HCB, VOA, HOA}.
type InvalidEnclosureError struct {
	Enclosure string
}

func (e *InvalidEnclosureError) Error() string {
	return fmt.Sprintf("invalid enclosure type %q", e.Enclosure)
}

// NotFoundError reports a registry or model lookup miss.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
