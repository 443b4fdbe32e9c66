package metadata

// Operator identifies the comparison a Filter applies.
type Operator int

// Constants representing the supported filter operators.
const (
	OpEqual Operator = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterEqual
	OpLessThan
	OpLessEqual
	OpIn
)

// Filter is a single condition on one metadata key.
type Filter struct {
	Key      string
	Operator Operator
	Value    any // For OpIn: a []any of candidate values.
}

// FilterSet is a conjunction of filters: a document matches when every
// filter matches.
type FilterSet struct {
	Filters []Filter
}

// Eq matches documents whose key equals value.
func Eq(key string, value any) Filter {
	return Filter{Key: key, Operator: OpEqual, Value: value}
}

// Ne matches documents whose key does not equal value.
func Ne(key string, value any) Filter {
	return Filter{Key: key, Operator: OpNotEqual, Value: value}
}

// Gt matches documents whose key is greater than value.
func Gt(key string, value any) Filter {
	return Filter{Key: key, Operator: OpGreaterThan, Value: value}
}

// Gte matches documents whose key is greater than or equal to value.
func Gte(key string, value any) Filter {
	return Filter{Key: key, Operator: OpGreaterEqual, Value: value}
}

// Lt matches documents whose key is less than value.
func Lt(key string, value any) Filter {
	return Filter{Key: key, Operator: OpLessThan, Value: value}
}

// Lte matches documents whose key is less than or equal to value.
func Lte(key string, value any) Filter {
	return Filter{Key: key, Operator: OpLessEqual, Value: value}
}

// In matches documents whose key equals one of the values.
func In(key string, values ...any) Filter {
	return Filter{Key: key, Operator: OpIn, Value: values}
}

// And builds a FilterSet from the given filters.
func And(filters ...Filter) *FilterSet {
	return &FilterSet{Filters: filters}
}

// Matches checks if the provided metadata matches this filter.
func (f Filter) Matches(doc Document) bool {
	raw, exists := doc[f.Key]
	if !exists {
		return false
	}
	value, ok := Normalize(raw)
	if !ok {
		return false
	}

	switch f.Operator {
	case OpEqual:
		want, ok := Normalize(f.Value)
		return ok && compareEqual(value, want)
	case OpNotEqual:
		want, ok := Normalize(f.Value)
		return ok && !compareEqual(value, want)
	case OpGreaterThan:
		want, ok := Normalize(f.Value)
		return ok && compareLess(want, value)
	case OpGreaterEqual:
		want, ok := Normalize(f.Value)
		return ok && (compareLess(want, value) || compareEqual(value, want))
	case OpLessThan:
		want, ok := Normalize(f.Value)
		return ok && compareLess(value, want)
	case OpLessEqual:
		want, ok := Normalize(f.Value)
		return ok && (compareLess(value, want) || compareEqual(value, want))
	case OpIn:
		candidates, ok := f.Value.([]any)
		if !ok {
			return false
		}
		for _, c := range candidates {
			want, ok := Normalize(c)
			if ok && compareEqual(value, want) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Matches checks if the provided metadata matches all filters in the set.
func (fs *FilterSet) Matches(doc Document) bool {
	for _, filter := range fs.Filters {
		if !filter.Matches(doc) {
			return false
		}
	}
	return true
}
