package registry

import (
	"strconv"

	"github.com/neox5/metricbox/metric"
)

// Groups registers metric definitions on behalf of one component. It
// implements metric.GroupsBuilder; every definition added through a handle
// is tracked, and Close withdraws them all at once.
type Groups struct {
	reg   *Registry
	shard string
}

var _ metric.GroupsBuilder = (*Groups)(nil)

// GroupsOption adjusts a Groups handle at creation time.
type GroupsOption func(*Groups)

// WithShard stamps the shard id as the default instance id onto every
// definition added through the handle. Definitions that set their own
// instance id keep it.
func WithShard(id int) GroupsOption {
	return func(g *Groups) { g.shard = strconv.Itoa(id) }
}

// NewGroups creates a registration handle bound to the registry.
func (r *Registry) NewGroups(opts ...GroupsOption) *Groups {
	g := &Groups{reg: r}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddMetric registers a single definition under the group name and
// returns the handle for chaining.
func (g *Groups) AddMetric(group string, def metric.Definition) metric.GroupsBuilder {
	return g.AddGroup(group, def)
}

// AddGroup registers the definitions under the group name and returns the
// handle for chaining.
func (g *Groups) AddGroup(group string, defs ...metric.Definition) metric.GroupsBuilder {
	if g.shard != "" {
		stamped := make([]metric.Definition, len(defs))
		for i, d := range defs {
			stamped[i] = d.WithDefaultInstanceID(g.shard)
		}
		defs = stamped
	}
	g.reg.add(g, group, defs)
	return g
}

// Close withdraws every definition registered through this handle. The
// handle stays usable; definitions added afterwards register again.
func (g *Groups) Close() {
	g.reg.removeOwner(g)
}
