package metric

import "sync/atomic"

// ValueFunc produces the current reading of a metric. Consumers call it
// each time they need a fresh value; implementations must not cache.
type ValueFunc func() Value

// Number is the set of native numeric types a source can read.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Source supplies readings for a metric definition. A source carries no
// data type of its own; the factory that accepts it fixes the type and
// binds the source to a ValueFunc producing tagged readings.
//
// Sources are built with Ref, Func, AtomicInt64 or AtomicUint64.
type Source interface {
	bind(typ DataType) ValueFunc
}

// Ref returns a source that reads the referenced variable at call time.
// The definition borrows the variable; the caller keeps ownership and must
// keep it alive for as long as the definition is registered. Updates
// through the pointer are visible to subsequent readings.
//
// Ref panics if p is nil.
func Ref[T Number](p *T) Source {
	if p == nil {
		panic("metric: Ref called with nil pointer")
	}
	return refSource[T]{p: p}
}

// Func returns a source that invokes fn for every reading. The function
// must be safe to call repeatedly and should be cheap; it runs on every
// collection.
//
// Func panics if fn is nil.
func Func[T Number](fn func() T) Source {
	if fn == nil {
		panic("metric: Func called with nil function")
	}
	return funcSource[T]{fn: fn}
}

// AtomicInt64 returns a source that atomically loads v at call time.
//
// AtomicInt64 panics if v is nil.
func AtomicInt64(v *atomic.Int64) Source {
	if v == nil {
		panic("metric: AtomicInt64 called with nil value")
	}
	return funcSource[int64]{fn: v.Load}
}

// AtomicUint64 returns a source that atomically loads v at call time.
//
// AtomicUint64 panics if v is nil.
func AtomicUint64(v *atomic.Uint64) Source {
	if v == nil {
		panic("metric: AtomicUint64 called with nil value")
	}
	return funcSource[uint64]{fn: v.Load}
}

type refSource[T Number] struct {
	p *T
}

func (s refSource[T]) bind(typ DataType) ValueFunc {
	p := s.p
	return func() Value { return valueOf(typ, *p) }
}

type funcSource[T Number] struct {
	fn func() T
}

func (s funcSource[T]) bind(typ DataType) ValueFunc {
	fn := s.fn
	return func() Value { return valueOf(typ, fn()) }
}

func valueOf[T Number](typ DataType, v T) Value {
	switch typ {
	case DataTypeGauge:
		return GaugeValue(float64(v))
	case DataTypeCounter:
		return CounterValue(uint64(v))
	case DataTypeDerive:
		return DeriveValue(int64(v))
	default:
		return AbsoluteValue(uint64(v))
	}
}
