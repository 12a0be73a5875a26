package widl

import (
	"fmt"
	"strings"
)

// VoidTypeName is the named type used for operations without a result.
const VoidTypeName = "void"

type Kind int

const (
	KindNamed Kind = iota + 1
	KindList
	KindMap
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOptional:
		return "optional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a field, parameter or return type. Values are shared by reference
// and must not be modified after construction.
type Type interface {
	Kind() Kind
	String() string
}

// Named refers to a scalar or to a declared type, enum or union.
type Named struct {
	Name string
}

type List struct {
	Element Type
}

type Map struct {
	Key   Type
	Value Type
}

type Optional struct {
	Type Type
}

func (*Named) Kind() Kind    { return KindNamed }
func (*List) Kind() Kind     { return KindList }
func (*Map) Kind() Kind      { return KindMap }
func (*Optional) Kind() Kind { return KindOptional }

func (t *Named) String() string    { return t.Name }
func (t *List) String() string     { return "[" + typeString(t.Element) + "]" }
func (t *Map) String() string      { return "{" + typeString(t.Key) + ": " + typeString(t.Value) + "}" }
func (t *Optional) String() string { return typeString(t.Type) + "?" }

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// ParseType parses a type expression:
//
//	string        named type
//	[T]           list of T
//	{K: V}        map from K to V
//	T?            optional T
func ParseType(expr string) (Type, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty type expression")
	}

	if strings.HasSuffix(s, "?") {
		inner, err := ParseType(s[:len(s)-1])
		if err != nil {
			return nil, err
		}
		return &Optional{Type: inner}, nil
	}

	switch {
	case s[0] == '[':
		if s[len(s)-1] != ']' {
			return nil, fmt.Errorf("type %q: unterminated list", expr)
		}
		elem, err := ParseType(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return &List{Element: elem}, nil

	case s[0] == '{':
		if s[len(s)-1] != '}' {
			return nil, fmt.Errorf("type %q: unterminated map", expr)
		}
		body := s[1 : len(s)-1]
		sep := topLevelColon(body)
		if sep < 0 {
			return nil, fmt.Errorf("type %q: map needs a key and a value", expr)
		}
		key, err := ParseType(body[:sep])
		if err != nil {
			return nil, err
		}
		value, err := ParseType(body[sep+1:])
		if err != nil {
			return nil, err
		}
		return &Map{Key: key, Value: value}, nil
	}

	if strings.ContainsAny(s, "[]{}:? \t") {
		return nil, fmt.Errorf("type %q: invalid type name", expr)
	}
	return &Named{Name: s}, nil
}

func topLevelColon(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
