// Package registry keeps metric definitions registered by independent
// components and serves them to consumers such as export bridges.
//
// Components obtain a Groups handle from a shared Registry and declare
// their definitions through it. The registry tracks which handle added
// which definition, so closing a handle withdraws exactly the definitions
// its component declared and nothing else.
package registry

import (
	"slices"
	"sync"

	"github.com/neox5/metricbox/metric"
)

// Entry pairs a registered definition with the group it was added under.
type Entry struct {
	Group string
	Def   metric.Definition
}

// Sample is one evaluated reading from an enabled definition.
type Sample struct {
	Group  string
	Name   string
	Labels []metric.LabelInstance
	Value  metric.Value
}

type entry struct {
	owner *Groups
	def   metric.Definition
}

// Registry holds the currently registered metric definitions. It is safe
// for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	groups map[string][]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		groups: make(map[string][]entry),
	}
}

// Group returns the definitions registered under the given group name in
// registration order, including disabled ones. The returned slice is a
// copy.
func (r *Registry) Group(name string) []metric.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.groups[name]
	if len(entries) == 0 {
		return nil
	}
	defs := make([]metric.Definition, len(entries))
	for i, e := range entries {
		defs[i] = e.def
	}
	return defs
}

// GroupNames returns the names of all groups with at least one registered
// definition, sorted.
func (r *Registry) GroupNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// List returns every registered entry, groups sorted by name, entries in
// registration order within each group. The returned slice is a copy;
// consumers read values from it without holding the registry lock.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.groups))
	total := 0
	for name, entries := range r.groups {
		names = append(names, name)
		total += len(entries)
	}
	slices.Sort(names)

	out := make([]Entry, 0, total)
	for _, name := range names {
		for _, e := range r.groups[name] {
			out = append(out, Entry{Group: name, Def: e.def})
		}
	}
	return out
}

// Snapshot evaluates every enabled definition and returns the readings in
// List order. Sources are invoked after the registry lock is released, so
// a source may itself use the registry.
func (r *Registry) Snapshot() []Sample {
	entries := r.List()

	samples := make([]Sample, 0, len(entries))
	for _, e := range entries {
		if !e.Def.Enabled() {
			continue
		}
		samples = append(samples, Sample{
			Group:  e.Group,
			Name:   e.Def.Name(),
			Labels: e.Def.Labels(),
			Value:  e.Def.Value(),
		})
	}
	return samples
}

func (r *Registry) add(owner *Groups, group string, defs []metric.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range defs {
		r.groups[group] = append(r.groups[group], entry{owner: owner, def: d})
	}
}

func (r *Registry) removeOwner(owner *Groups) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, entries := range r.groups {
		kept := entries[:0]
		for _, e := range entries {
			if e.owner != owner {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(r.groups, name)
			continue
		}
		r.groups[name] = kept
	}
}
