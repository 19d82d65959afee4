/*
registry.go Keyed store of DER records plus the flattened payload handed
to the external dynamic-simulation engine. Insert rejects id collisions;
Upsert replaces. Single writer finishes before any reader starts.
*/

package der

import (
	"io/ioutil"
	"sort"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

// Registry stores DERs keyed by der_id.
type Registry struct {
	ders map[string]*DER
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ders: make(map[string]*DER)}
}

// Insert parses, validates and stores a DER from a structured source,
// failing on an existing id.
func (r *Registry) Insert(derID string, raw []byte) (*DER, error) {
	if _, ok := r.ders[derID]; ok {
		return nil, &model.DuplicateIDError{Kind: "der", ID: derID}
	}
	return r.Upsert(derID, raw)
}

// Upsert parses, validates and stores a DER, replacing any prior entry
// under the same id.
func (r *Registry) Upsert(derID string, raw []byte) (*DER, error) {
	d, err := Parse(derID, raw)
	if err != nil {
		return nil, err
	}
	r.ders[derID] = d
	return d, nil
}

// InsertFile reads a JSON source file and inserts it under derID.
func (r *Registry) InsertFile(derID string, path string) (*DER, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Insert(derID, raw)
}

// Get returns the stored DER or NotFoundError.
func (r *Registry) Get(derID string) (*DER, error) {
	d, ok := r.ders[derID]
	if !ok {
		return nil, &model.NotFoundError{Kind: "der", ID: derID}
	}
	return d, nil
}

// IDs returns the registered der_ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ders))
	for id := range r.ders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SimPayload flattens the stored DER into the record consumed by the
// external dynamic-simulation engine.
func (r *Registry) SimPayload(derID string) (Payload, error) {
	d, err := r.Get(derID)
	if err != nil {
		return Payload{}, err
	}
	return NewPayload(d), nil
}
