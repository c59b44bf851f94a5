// Package normalize turns the heterogeneous scalars returned by the warehouse
// into canonical month keys and plain numbers.
package normalize

import "database/sql"

// maxDepth bounds how many boxes are opened before a value is considered opaque.
const maxDepth = 4

// Boxed is a scalar wrapped by the warehouse driver, e.g. {"value": "2024-03-01"}.
type Boxed struct {
	Value any `json:"value"`
}

// unbox opens one level of a recognized wrapper. The second result is false
// when raw is not a wrapper or the wrapper holds no value.
func unbox(raw any) (any, bool) {
	switch v := raw.(type) {
	case Boxed:
		return v.Value, true
	case *Boxed:
		if v == nil {
			return nil, false
		}
		return v.Value, true
	case map[string]any:
		val, ok := v["value"]
		return val, ok
	case sql.NullString:
		return v.String, v.Valid
	case sql.NullTime:
		return v.Time, v.Valid
	case sql.NullFloat64:
		return v.Float64, v.Valid
	case sql.NullInt64:
		return v.Int64, v.Valid
	case sql.NullInt32:
		return v.Int32, v.Valid
	}

	return nil, false
}
