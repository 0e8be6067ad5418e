package metric

// GroupsBuilder accepts metric definitions grouped under a common group
// name. Components declare their metrics against this interface; a
// registrar implements it and decides how the definitions are kept and
// exposed.
type GroupsBuilder interface {
	// AddMetric registers a single definition under the group name and
	// returns the builder for chaining.
	AddMetric(group string, def Definition) GroupsBuilder

	// AddGroup registers the given definitions under the group name and
	// returns the builder for chaining.
	AddGroup(group string, defs ...Definition) GroupsBuilder
}
