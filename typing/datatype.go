package typing

// DataType is the interface for all data types in Tarn.
type DataType interface {
	// Repr returns a string representing the data type
	Repr() string

	// equals takes in another DataType returns if the two data types are equal.
	// This method should return exact/true equality with no considerations for
	// underlying types.  It is meant to only be called internally.
	equals(other DataType) bool
}

// -----------------------------------------------------------------------------

// Equals computes exact equality between two data types: an enum type is never
// equal to its base type
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.equals(b)
}

// InnerType returns the type "stored" by another data type: the base type of
// an enum whose base type is known.  This is used for quickly unwrapping types
// before arithmetic and classification.
func InnerType(dt DataType) DataType {
	for {
		et, ok := dt.(*EnumType)
		if !ok {
			return dt
		}

		base := et.Info.BaseType()
		if base == nil {
			return dt
		}

		dt = base
	}
}

// Repr returns the representation of a possibly nil data type
func Repr(dt DataType) string {
	if dt == nil {
		return "<unknown>"
	}

	return dt.Repr()
}
