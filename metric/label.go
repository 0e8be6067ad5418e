package metric

import (
	"fmt"
	"strings"
)

// ShardLabel distinguishes metrics of the same name reported by multiple
// shards of one process. Registrars stamp it onto definitions that do not
// set their own instance id.
var ShardLabel = NewLabel("shard")

// Label is a named dimension along which metrics of the same name are
// told apart. Declare a label once and mint instances from it per value.
type Label struct {
	key string
}

// NewLabel returns a label with the given key.
func NewLabel(key string) Label {
	return Label{key: key}
}

// Name returns the label key.
func (l Label) Name() string { return l.key }

// Instance pairs the label with a concrete value. Non-string values are
// formatted with fmt.Sprint.
func (l Label) Instance(v any) LabelInstance {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return LabelInstance{key: l.key, value: s}
}

// LabelInstance is a label key paired with a value. Instances are plain
// comparable values; two instances are equal exactly when both key and
// value match.
type LabelInstance struct {
	key   string
	value string
}

// Key returns the label key.
func (li LabelInstance) Key() string { return li.key }

// Value returns the instance value.
func (li LabelInstance) Value() string { return li.value }

// String returns the instance in key=value form.
func (li LabelInstance) String() string {
	return li.key + "=" + li.value
}

// Compare orders instances by key, then by value. It returns -1, 0 or +1
// like strings.Compare.
func (li LabelInstance) Compare(o LabelInstance) int {
	if c := strings.Compare(li.key, o.key); c != 0 {
		return c
	}
	return strings.Compare(li.value, o.value)
}
