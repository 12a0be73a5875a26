package widl

// Document is the root of a parsed interface definition.
type Document struct {
	Namespace Namespace
	Roles     []*Role
	Types     []*TypeDefinition
	Enums     []*EnumDefinition
	Unions    []*UnionDefinition
}

type Namespace struct {
	Name        string
	Description string
	Annotations Annotations
}

// Role groups operations that are exposed together, e.g. a service.
type Role struct {
	Name        string
	Description string
	Annotations Annotations
	Operations  []*Operation
}

// Operation is a single call on a role.
//
// When Unary is set the operation has exactly one parameter and that
// parameter's type is the request type on the wire.
type Operation struct {
	Name        string
	Description string
	Annotations Annotations
	Parameters  []*Parameter
	Returns     Type
	Unary       bool
}

// ReturnsValue reports whether the operation returns anything. A nil
// return type and the named type "void" both mean no value.
func (o *Operation) ReturnsValue() bool {
	if o.Returns == nil {
		return false
	}
	if n, ok := o.Returns.(*Named); ok && n.Name == VoidTypeName {
		return false
	}
	return true
}

type Parameter struct {
	Name        string
	Description string
	Type        Type
	Default     any
	Annotations Annotations
}

type TypeDefinition struct {
	Name        string
	Description string
	Annotations Annotations
	Fields      []*FieldDefinition
}

type FieldDefinition struct {
	Name        string
	Description string
	Type        Type
	Default     any
	Annotations Annotations
}

type EnumDefinition struct {
	Name        string
	Description string
	Annotations Annotations
	Values      []*EnumValue
}

type EnumValue struct {
	Name        string
	Description string
	Index       int
}

// UnionDefinition is a value that holds exactly one of its member types.
type UnionDefinition struct {
	Name        string
	Description string
	Annotations Annotations
	Types       []Type
}
