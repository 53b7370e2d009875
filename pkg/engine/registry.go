package engine

import (
	"slices"

	"github.com/scylladb/go-set/i64set"

	"github.com/autobrr/regexmatcher/pkg/matcher"
)

// registry keeps definitions in insertion order so compilation errors are attributed deterministically.
type registry struct {
	definitions []matcher.Definition
}

func (r *registry) add(d matcher.Definition) {
	r.definitions = append(r.definitions, d)
}

// remove drops every definition carrying id and returns how many were dropped.
func (r *registry) remove(id int64) int {
	before := len(r.definitions)
	r.definitions = slices.DeleteFunc(r.definitions, func(d matcher.Definition) bool {
		return d.ID == id
	})
	return before - len(r.definitions)
}

func (r *registry) snapshot() []matcher.Definition {
	return slices.Clone(r.definitions)
}

func (r *registry) len() int {
	return len(r.definitions)
}

func (r *registry) ids() *i64set.Set {
	ids := i64set.NewWithSize(len(r.definitions))
	for _, d := range r.definitions {
		ids.Add(d.ID)
	}
	return ids
}
