package metric

import "slices"

// Definition describes one metric: its name, data type and labels, plus
// the bound source that produces its current reading. Definitions are
// immutable; build them with the factory functions and adjust them with
// options.
//
// The zero Definition has no source and must not be read.
type Definition struct {
	name        string
	typ         DataType
	typeName    string
	description string
	labels      map[string]string
	instanceID  string
	enabled     bool
	read        ValueFunc
}

// Option adjusts a definition at construction time.
type Option func(*defOptions)

type defOptions struct {
	typeName    string
	description string
	labels      map[string]string
	instanceID  string
	enabled     bool
}

// WithDescription attaches a human-readable description.
func WithDescription(text string) Option {
	return func(o *defOptions) { o.description = text }
}

// WithLabels attaches label instances to the definition. Repeated options
// accumulate; when the same key appears more than once, the last instance
// wins.
func WithLabels(labels ...LabelInstance) Option {
	return func(o *defOptions) {
		if o.labels == nil {
			o.labels = make(map[string]string, len(labels))
		}
		for _, li := range labels {
			o.labels[li.key] = li.value
		}
	}
}

// WithEnabled sets whether the definition is reported. Definitions default
// to enabled unless the build globally disables metrics.
func WithEnabled(enabled bool) Option {
	return func(o *defOptions) { o.enabled = enabled }
}

// WithInstanceID sets the instance id explicitly, overriding any default a
// registrar would stamp.
func WithInstanceID(id string) Option {
	return func(o *defOptions) { o.instanceID = id }
}

// WithTypeName overrides the conventional type name set by the factory.
func WithTypeName(name string) Option {
	return func(o *defOptions) { o.typeName = name }
}

func newDefinition(typ DataType, typeName, name string, src Source, opts ...Option) Definition {
	o := defOptions{
		typeName: typeName,
		enabled:  !Disabled,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return Definition{
		name:        name,
		typ:         typ,
		typeName:    o.typeName,
		description: o.description,
		labels:      o.labels,
		instanceID:  o.instanceID,
		enabled:     o.enabled,
		read:        src.bind(typ),
	}
}

// Name returns the metric name.
func (d Definition) Name() string { return d.name }

// Type returns the data type of the metric's readings.
func (d Definition) Type() DataType { return d.typ }

// TypeName returns the conventional type name, such as "total_bytes" or
// "queue_length".
func (d Definition) TypeName() string { return d.typeName }

// Description returns the attached description, if any.
func (d Definition) Description() string { return d.description }

// Enabled reports whether the definition should be reported.
func (d Definition) Enabled() bool { return d.enabled }

// InstanceID returns the instance id, or the empty string when none was
// set or stamped.
func (d Definition) InstanceID() string { return d.instanceID }

// Labels returns the definition's label instances sorted by key, then
// value. When an instance id is set it appears as the shard label, unless
// the definition carries its own shard label.
func (d Definition) Labels() []LabelInstance {
	out := make([]LabelInstance, 0, len(d.labels)+1)
	for k, v := range d.labels {
		out = append(out, LabelInstance{key: k, value: v})
	}
	if d.instanceID != "" {
		if _, ok := d.labels[ShardLabel.Name()]; !ok {
			out = append(out, ShardLabel.Instance(d.instanceID))
		}
	}
	slices.SortFunc(out, LabelInstance.Compare)
	return out
}

// Value invokes the bound source and returns the current reading.
func (d Definition) Value() Value { return d.read() }

// WithDefaultInstanceID returns a copy of the definition with the instance
// id set to id, unless the definition already has one. Registrars use it
// to stamp their shard onto definitions that did not choose their own.
func (d Definition) WithDefaultInstanceID(id string) Definition {
	if d.instanceID != "" {
		return d
	}
	d.instanceID = id
	return d
}
