/*
loader.go Format dispatch for system-model ingestion. Each loader parses
one external representation into a validated model.SystemModel; on any
error the caller receives no model.
*/

package loader

import (
	"strings"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver"
)

// Load dispatches a case-insensitive format tag (csv|json|dss) to the
// matching loader. The solver is consulted only for the dss format.
func Load(ns solver.NetworkSolver, path string, format string) (*model.SystemModel, error) {
	switch strings.ToLower(format) {
	case "csv":
		return LoadCSV(path)
	case "json":
		return LoadJSON(path)
	case "dss":
		return LoadDSS(ns, path)
	default:
		return nil, &model.UnsupportedFormatError{Format: format}
	}
}
