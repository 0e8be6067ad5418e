package metric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// DataType states how a metric's readings behave over time and which
// native representation they carry.
type DataType int

const (
	// DataTypeGauge is a float64 snapshot that can move in any direction.
	DataTypeGauge DataType = iota
	// DataTypeCounter is a uint64 total that only ever increases.
	DataTypeCounter
	// DataTypeDerive is an int64 cumulative total that may decrease.
	DataTypeDerive
	// DataTypeAbsolute is a uint64 reading consumed as-is by the backend.
	DataTypeAbsolute
)

// String returns the lowercase name of the data type.
func (t DataType) String() string {
	switch t {
	case DataTypeGauge:
		return "gauge"
	case DataTypeCounter:
		return "counter"
	case DataTypeDerive:
		return "derive"
	case DataTypeAbsolute:
		return "absolute"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// ErrTypeMismatch is returned when two values of different data types
// are combined.
var ErrTypeMismatch = errors.New("data type mismatch")

// Value is a single reading tagged with its data type. The zero Value is
// a gauge reading zero.
//
// Each data type stores its reading in one native representation: float64
// for gauges, int64 for derives, uint64 for counters and absolutes. The
// accessors convert from that representation, so Uint64 on a gauge holding
// 2.5 returns 2, not a reinterpretation of the float bits.
type Value struct {
	typ  DataType
	bits uint64
}

// GaugeValue returns a gauge reading.
func GaugeValue(v float64) Value {
	return Value{typ: DataTypeGauge, bits: math.Float64bits(v)}
}

// CounterValue returns a counter reading.
func CounterValue(v uint64) Value {
	return Value{typ: DataTypeCounter, bits: v}
}

// DeriveValue returns a derive reading.
func DeriveValue(v int64) Value {
	return Value{typ: DataTypeDerive, bits: uint64(v)}
}

// AbsoluteValue returns an absolute reading.
func AbsoluteValue(v uint64) Value {
	return Value{typ: DataTypeAbsolute, bits: v}
}

// Type returns the data type the value was created with.
func (v Value) Type() DataType { return v.typ }

// Float64 returns the reading converted to float64.
func (v Value) Float64() float64 {
	switch v.typ {
	case DataTypeGauge:
		return math.Float64frombits(v.bits)
	case DataTypeDerive:
		return float64(int64(v.bits))
	default:
		return float64(v.bits)
	}
}

// Int64 returns the reading converted to int64.
func (v Value) Int64() int64 {
	switch v.typ {
	case DataTypeGauge:
		return int64(math.Float64frombits(v.bits))
	case DataTypeDerive:
		return int64(v.bits)
	default:
		return int64(v.bits)
	}
}

// Uint64 returns the reading converted to uint64.
func (v Value) Uint64() uint64 {
	switch v.typ {
	case DataTypeGauge:
		return uint64(math.Float64frombits(v.bits))
	case DataTypeDerive:
		return uint64(int64(v.bits))
	default:
		return v.bits
	}
}

// Add combines two readings of the same data type and returns the sum.
// Combining values of different types fails with ErrTypeMismatch.
func (v Value) Add(o Value) (Value, error) {
	if v.typ != o.typ {
		return Value{}, fmt.Errorf("failed to add %s value to %s value: %w", o.typ, v.typ, ErrTypeMismatch)
	}
	switch v.typ {
	case DataTypeGauge:
		return GaugeValue(v.Float64() + o.Float64()), nil
	case DataTypeDerive:
		return DeriveValue(v.Int64() + o.Int64()), nil
	default:
		return Value{typ: v.typ, bits: v.bits + o.bits}, nil
	}
}

// String formats the reading in its native representation.
func (v Value) String() string {
	switch v.typ {
	case DataTypeGauge:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case DataTypeDerive:
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return strconv.FormatUint(v.bits, 10)
	}
}
