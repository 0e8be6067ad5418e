package metric

// NewGauge returns a gauge definition: a float snapshot that can move in
// any direction, such as a temperature or a fill level.
func NewGauge(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeGauge, "gauge", name, src, opts...)
}

// NewCounter returns a counter definition: an unsigned total that only
// ever increases.
func NewCounter(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeCounter, "counter", name, src, opts...)
}

// NewDerive returns a derive definition: a cumulative total that is
// allowed to decrease, reported as a signed value.
func NewDerive(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeDerive, "derive", name, src, opts...)
}

// NewAbsolute returns an absolute definition: a reading handed to the
// backend as-is, without rate or delta interpretation.
func NewAbsolute(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeAbsolute, "absolute", name, src, opts...)
}

// NewTotalBytes returns a derive definition with the conventional
// "total_bytes" type name, for byte totals such as bytes written to disk.
func NewTotalBytes(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeDerive, "total_bytes", name, src, opts...)
}

// NewCurrentBytes returns a derive definition with the conventional
// "bytes" type name, for byte amounts in momentary use.
func NewCurrentBytes(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeDerive, "bytes", name, src, opts...)
}

// NewQueueLength returns a gauge definition with the conventional
// "queue_length" type name, for the momentary depth of a queue.
func NewQueueLength(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeGauge, "queue_length", name, src, opts...)
}

// NewTotalOperations returns a derive definition with the conventional
// "total_operations" type name, for operation totals such as completed
// requests.
func NewTotalOperations(name string, src Source, opts ...Option) Definition {
	return newDefinition(DataTypeDerive, "total_operations", name, src, opts...)
}
