package promql

// ValueType is a PromQL semantic value type.
type ValueType int

const (
	// ValueTypeNone is the type of expressions that produce no value.
	ValueTypeNone ValueType = iota
	// ValueTypeScalar is a single number without labels.
	ValueTypeScalar
	// ValueTypeVector is an instant vector.
	ValueTypeVector
	// ValueTypeMatrix is a range vector.
	ValueTypeMatrix
	// ValueTypeString is a string literal.
	ValueTypeString
)

// String implements fmt.Stringer.
//
// Names match the ones Prometheus uses in diagnostics.
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeScalar:
		return "scalar"
	case ValueTypeVector:
		return "instant vector"
	case ValueTypeMatrix:
		return "range vector"
	case ValueTypeString:
		return "string"
	default:
		return "none"
	}
}
