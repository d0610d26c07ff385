package session

import (
	"encoding/json"
	"errors"
	"reflect"
)

// Marshal encodes a session as JSON with RFC 3339 timestamps. Metadata is
// checked for self-references first so callers get ErrCircularReference
// instead of a generic encoding failure.
func Marshal(sess Session) ([]byte, error) {
	if sess.User != nil && hasCycle(reflect.ValueOf(sess.User.Metadata), make(map[uintptr]struct{})) {
		return nil, errors.Join(ErrSerialization, ErrCircularReference)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return data, nil
}

// Unmarshal decodes a session from its JSON form.
func Unmarshal(data []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return &sess, nil
}

// hasCycle walks maps, slices, pointers, and interfaces looking for a
// reference back to a container already on the current path.
func hasCycle(v reflect.Value, seen map[uintptr]struct{}) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if v.IsNil() {
			return false
		}
		ptr := v.Pointer()
		if _, ok := seen[ptr]; ok {
			return true
		}
		seen[ptr] = struct{}{}
		defer delete(seen, ptr)

		switch v.Kind() {
		case reflect.Map:
			iter := v.MapRange()
			for iter.Next() {
				if hasCycle(iter.Value(), seen) {
					return true
				}
			}
		case reflect.Slice:
			for i := range v.Len() {
				if hasCycle(v.Index(i), seen) {
					return true
				}
			}
		case reflect.Pointer:
			return hasCycle(v.Elem(), seen)
		}
		return false
	case reflect.Interface:
		if v.IsNil() {
			return false
		}
		return hasCycle(v.Elem(), seen)
	case reflect.Struct:
		for i := range v.NumField() {
			if hasCycle(v.Field(i), seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
