package widl

import (
	"fmt"
	"math"
)

// FieldNumAnnotation names the annotation carrying a field's wire number.
const FieldNumAnnotation = "fieldnum"

type Annotation struct {
	Name  string
	Value any
}

// Annotations keeps declaration order.
type Annotations []Annotation

func (as Annotations) Get(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

func (as Annotations) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// Int returns the annotation value as an integer in the int32 range. Floats
// are accepted only when they hold an integral value.
func (a Annotation) Int() (int, error) {
	var n int64
	switch v := a.Value.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt32 {
			return 0, a.outOfRange(v)
		}
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, a.outOfRange(v)
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("annotation %q: value %v is not an integer", a.Name, v)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, a.outOfRange(v)
		}
		n = int64(v)
	default:
		return 0, fmt.Errorf("annotation %q: value %v (%T) is not an integer", a.Name, a.Value, a.Value)
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, a.outOfRange(n)
	}
	return int(n), nil
}

func (a Annotation) outOfRange(v any) error {
	return fmt.Errorf("annotation %q: value %v out of range", a.Name, v)
}
