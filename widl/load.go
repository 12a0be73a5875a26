package widl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that cannot be turned into a
// Document: malformed YAML, unparsable types or missing names.
var ErrInvalidDocument = errors.New("invalid document")

type rawDocument struct {
	Namespace rawNamespace `yaml:"namespace"`
	Roles     []rawRole    `yaml:"roles"`
	Types     []rawType    `yaml:"types"`
	Enums     []rawEnum    `yaml:"enums"`
	Unions    []rawUnion   `yaml:"unions"`
}

type rawNamespace struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Annotations Annotations `yaml:"annotations"`
}

type rawRole struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Annotations Annotations    `yaml:"annotations"`
	Operations  []rawOperation `yaml:"operations"`
}

type rawOperation struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Annotations Annotations `yaml:"annotations"`
	Parameters  []rawField  `yaml:"parameters"`
	Returns     string      `yaml:"returns"`
	Unary       bool        `yaml:"unary"`
}

type rawField struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Type        string      `yaml:"type"`
	Default     any         `yaml:"default"`
	Annotations Annotations `yaml:"annotations"`
}

type rawType struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Annotations Annotations `yaml:"annotations"`
	Fields      []rawField  `yaml:"fields"`
}

type rawEnum struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Annotations Annotations    `yaml:"annotations"`
	Values      []rawEnumValue `yaml:"values"`
}

type rawEnumValue struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Index       *int   `yaml:"index"`
}

type rawUnion struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Annotations Annotations `yaml:"annotations"`
	Types       []string    `yaml:"types"`
}

// UnmarshalYAML accepts either a bare namespace name or a mapping with
// name, description and annotations.
func (n *rawNamespace) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Name = value.Value
		return nil
	}
	type plain rawNamespace
	return value.Decode((*plain)(n))
}

// UnmarshalYAML reads annotations from a mapping, keeping key order. A
// sequence of names is accepted as annotations without values.
func (as *Annotations) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		out := make(Annotations, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			var v any
			if err := value.Content[i+1].Decode(&v); err != nil {
				return fmt.Errorf("annotation %q: %w", value.Content[i].Value, err)
			}
			out = append(out, Annotation{Name: value.Content[i].Value, Value: v})
		}
		*as = out
	case yaml.SequenceNode:
		out := make(Annotations, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: annotation names must be scalars", item.Line)
			}
			out = append(out, Annotation{Name: item.Value})
		}
		*as = out
	default:
		return fmt.Errorf("line %d: annotations must be a mapping or a list", value.Line)
	}
	return nil
}

// LoadFile reads a document from a YAML file.
func LoadFile(path string) (*Document, error) {
	// #nosec G304 - the path is supplied by the user on purpose
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load decodes a YAML document and checks that it is structurally usable.
func Load(r io.Reader) (*Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc, err := raw.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

func (raw *rawDocument) build() (*Document, error) {
	if raw.Namespace.Name == "" {
		return nil, errors.New("namespace is required")
	}

	doc := &Document{
		Namespace: Namespace{
			Name:        raw.Namespace.Name,
			Description: raw.Namespace.Description,
			Annotations: raw.Namespace.Annotations,
		},
	}

	for i, r := range raw.Roles {
		role, err := r.build()
		if err != nil {
			return nil, fmt.Errorf("roles[%d]: %w", i, err)
		}
		doc.Roles = append(doc.Roles, role)
	}

	for i, t := range raw.Types {
		td, err := t.build()
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		doc.Types = append(doc.Types, td)
	}

	for i, e := range raw.Enums {
		ed, err := e.build()
		if err != nil {
			return nil, fmt.Errorf("enums[%d]: %w", i, err)
		}
		doc.Enums = append(doc.Enums, ed)
	}

	for i, u := range raw.Unions {
		ud, err := u.build()
		if err != nil {
			return nil, fmt.Errorf("unions[%d]: %w", i, err)
		}
		doc.Unions = append(doc.Unions, ud)
	}

	return doc, nil
}

func (r *rawRole) build() (*Role, error) {
	if r.Name == "" {
		return nil, errors.New("name is required")
	}
	role := &Role{
		Name:        r.Name,
		Description: r.Description,
		Annotations: r.Annotations,
	}
	for i := range r.Operations {
		op, err := r.Operations[i].build()
		if err != nil {
			return nil, fmt.Errorf("role %s: operations[%d]: %w", r.Name, i, err)
		}
		role.Operations = append(role.Operations, op)
	}
	return role, nil
}

func (o *rawOperation) build() (*Operation, error) {
	if o.Name == "" {
		return nil, errors.New("name is required")
	}
	op := &Operation{
		Name:        o.Name,
		Description: o.Description,
		Annotations: o.Annotations,
		Unary:       o.Unary,
	}
	for i := range o.Parameters {
		p := &o.Parameters[i]
		if p.Name == "" {
			return nil, fmt.Errorf("operation %s: parameters[%d]: name is required", o.Name, i)
		}
		t, err := ParseType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("operation %s: parameter %s: %w", o.Name, p.Name, err)
		}
		op.Parameters = append(op.Parameters, &Parameter{
			Name:        p.Name,
			Description: p.Description,
			Type:        t,
			Default:     p.Default,
			Annotations: p.Annotations,
		})
	}
	if o.Unary && len(op.Parameters) != 1 {
		return nil, fmt.Errorf("operation %s: unary operations take exactly one parameter, got %d", o.Name, len(op.Parameters))
	}
	if o.Returns != "" {
		t, err := ParseType(o.Returns)
		if err != nil {
			return nil, fmt.Errorf("operation %s: returns: %w", o.Name, err)
		}
		op.Returns = t
	}
	return op, nil
}

func (t *rawType) build() (*TypeDefinition, error) {
	if t.Name == "" {
		return nil, errors.New("name is required")
	}
	td := &TypeDefinition{
		Name:        t.Name,
		Description: t.Description,
		Annotations: t.Annotations,
	}
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("type %s: fields[%d]: name is required", t.Name, i)
		}
		ft, err := ParseType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("type %s: field %s: %w", t.Name, f.Name, err)
		}
		td.Fields = append(td.Fields, &FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Type:        ft,
			Default:     f.Default,
			Annotations: f.Annotations,
		})
	}
	return td, nil
}

func (e *rawEnum) build() (*EnumDefinition, error) {
	if e.Name == "" {
		return nil, errors.New("name is required")
	}
	ed := &EnumDefinition{
		Name:        e.Name,
		Description: e.Description,
		Annotations: e.Annotations,
	}
	for i, v := range e.Values {
		if v.Name == "" {
			return nil, fmt.Errorf("enum %s: values[%d]: name is required", e.Name, i)
		}
		if v.Index == nil {
			return nil, fmt.Errorf("enum %s: value %s: index is required", e.Name, v.Name)
		}
		ed.Values = append(ed.Values, &EnumValue{
			Name:        v.Name,
			Description: v.Description,
			Index:       *v.Index,
		})
	}
	return ed, nil
}

func (u *rawUnion) build() (*UnionDefinition, error) {
	if u.Name == "" {
		return nil, errors.New("name is required")
	}
	ud := &UnionDefinition{
		Name:        u.Name,
		Description: u.Description,
		Annotations: u.Annotations,
	}
	for _, expr := range u.Types {
		t, err := ParseType(expr)
		if err != nil {
			return nil, fmt.Errorf("union %s: %w", u.Name, err)
		}
		ud.Types = append(ud.Types, t)
	}
	return ud, nil
}
