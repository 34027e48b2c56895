// Package types declares the shapes exchanged with the Scorch REST API.
//
// Most Scorch entities (pipelines, batches, schedules, releases, packages and metrics)
// are defined by the Scorch server; the console handles them as Records and
// only looks into the fields it edits or displays.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a JSON object whose schema is owned by the Scorch server.
//
// Numbers are kept as json.Number when decoded by the REST client,
// so identifiers survive a round trip unchanged.
type Record map[string]any

// String returns the field as string.
//
// Numbers and booleans are formatted. Missing fields, null, objects and arrays yield "".
func (r Record) String(key string) string {
	return stringOf(r[key])
}

func stringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any, []any, Record:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// ID returns the "id" field as string.
func (r Record) ID() string {
	return r.String("id")
}

// Name returns the "name" field.
func (r Record) Name() string {
	return r.String("name")
}

// Int returns the field as int. It returns (0, false) when the field is not a number.
func (r Record) Int(key string) (int, bool) {
	switch x := r[key].(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			f, err := x.Float64()
			if err != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(i), true
	case float64:
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		i, err := strconv.Atoi(x)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// Bool returns the field as bool. Missing or non-boolean fields are false.
func (r Record) Bool(key string) bool {
	switch x := r[key].(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	}
	return false
}

// Record returns the field as a nested Record, or nil.
func (r Record) Record(key string) Record {
	return recordOf(r[key])
}

func recordOf(v any) Record {
	switch x := v.(type) {
	case Record:
		return x
	case map[string]any:
		return Record(x)
	}
	return nil
}

// Records returns the field as a list of nested Records. Non-object elements are skipped.
func (r Record) Records(key string) []Record {
	switch x := r[key].(type) {
	case []Record:
		return x
	case []any:
		ret := make([]Record, 0, len(x))
		for _, e := range x {
			if rec := recordOf(e); rec != nil {
				ret = append(ret, rec)
			}
		}
		return ret
	case []map[string]any:
		ret := make([]Record, 0, len(x))
		for _, e := range x {
			ret = append(ret, Record(e))
		}
		return ret
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(r).(Record)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Record:
		ret := make(Record, len(x))
		for k, e := range x {
			ret[k] = cloneValue(e)
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(x))
		for k, e := range x {
			ret[k] = cloneValue(e)
		}
		return ret
	case []any:
		ret := make([]any, len(x))
		for i, e := range x {
			ret[i] = cloneValue(e)
		}
		return ret
	case []Record:
		ret := make([]Record, len(x))
		for i, e := range x {
			ret[i] = e.Clone()
		}
		return ret
	case map[string]string:
		ret := make(map[string]string, len(x))
		for k, e := range x {
			ret[k] = e
		}
		return ret
	case Parameters:
		return x.Clone()
	default:
		return x
	}
}
