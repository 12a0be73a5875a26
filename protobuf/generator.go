package protobuf

import (
	"fmt"
	"strconv"

	"github.com/pkedy/widl-grpc/internal/strcase"
	"github.com/pkedy/widl-grpc/widl"
	"github.com/sirupsen/logrus"
)

// protobufGenerator emits one document. It holds the request messages
// synthesized while visiting operations, so a new generator is needed for
// every document.
type protobufGenerator struct {
	writer   protoWriter
	opts     Options
	log      logrus.FieldLogger
	requests []*widl.TypeDefinition
}

func newProtobufGenerator(opts Options) *protobufGenerator {
	if opts.Filter == nil {
		opts.Filter = AllHandlers()
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	return &protobufGenerator{
		opts: opts,
		log:  log,
	}
}

func (g *protobufGenerator) generate(doc *widl.Document) error {
	g.writeHeader(doc)

	for _, role := range doc.Roles {
		if !g.opts.Filter.IncludeRole(role) {
			g.log.WithField("role", role.Name).Debug("skipping role rejected by handler filter")
			continue
		}
		if err := g.writeService(role); err != nil {
			return fmt.Errorf("service %s: %w", role.Name, err)
		}
	}

	for _, td := range doc.Types {
		if err := g.writeMessage(td); err != nil {
			return fmt.Errorf("message %s: %w", td.Name, err)
		}
	}

	for _, ed := range doc.Enums {
		g.writeEnum(ed)
	}

	for _, ud := range doc.Unions {
		if err := g.writeUnion(ud); err != nil {
			return fmt.Errorf("union %s: %w", ud.Name, err)
		}
	}

	for _, req := range g.requests {
		if err := g.writeMessage(req); err != nil {
			return fmt.Errorf("message %s: %w", req.Name, err)
		}
	}

	return nil
}

func (g *protobufGenerator) writeHeader(doc *widl.Document) {
	g.writer.line(`syntax = "proto3";`)
	g.writer.line()

	packageName := g.opts.PackageName
	if packageName == "" {
		packageName = doc.Namespace.Name
	}
	g.writer.line("package ", packageName, ";")
	g.writer.line()

	if g.opts.GoPackage != "" {
		g.writer.line(`option go_package = "`, g.opts.GoPackage, `";`)
		g.writer.line()
	}
}

func (g *protobufGenerator) writeService(role *widl.Role) error {
	g.writer.comment("// ", role.Description)
	g.writer.line("service ", role.Name, " {")

	for _, op := range role.Operations {
		if !g.opts.Filter.IncludeOperation(role, op) {
			g.log.WithFields(logrus.Fields{
				"role":      role.Name,
				"operation": op.Name,
			}).Debug("skipping operation rejected by handler filter")
			continue
		}
		if err := g.writeRPC(op); err != nil {
			return fmt.Errorf("rpc %s: %w", op.Name, err)
		}
	}

	g.writer.line("}")
	g.writer.line()
	return nil
}

func (g *protobufGenerator) writeRPC(op *widl.Operation) error {
	var requestType string
	if op.Unary && len(op.Parameters) == 1 {
		sig, err := TypeSignature(op.Parameters[0].Type)
		if err != nil {
			return err
		}
		requestType = sig
	} else {
		req := synthesizeRequest(op)
		g.requests = append(g.requests, req)
		g.log.WithField("message", req.Name).Debug("synthesized request message")
		requestType = req.Name
	}

	responseType := emptyMessageName
	if op.ReturnsValue() {
		sig, err := TypeSignature(op.Returns)
		if err != nil {
			return err
		}
		responseType = sig
	}

	g.writer.comment(indent+"// ", op.Description)
	g.writer.line(indent, "rpc ", strcase.ToPascalCase(op.Name), "(", requestType, ") returns (", responseType, ");")
	return nil
}

// writeMessage fails on the first field without a fieldnum, after the
// preceding fields have been written and before the closing brace.
func (g *protobufGenerator) writeMessage(td *widl.TypeDefinition) error {
	g.writer.comment("// ", td.Description)
	g.writer.line("message ", strcase.ToPascalCase(td.Name), " {")

	for _, field := range td.Fields {
		num, err := fieldNumber(field)
		if err != nil {
			return err
		}
		sig, err := TypeSignature(field.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		g.writer.comment(indent+"// ", field.Description)
		g.writer.line(indent, sig, " ", strcase.ToSnakeCase(field.Name), " = ", strconv.Itoa(num), ";")
	}

	g.writer.line("}")
	g.writer.line()
	return nil
}

func (g *protobufGenerator) writeEnum(ed *widl.EnumDefinition) {
	g.writer.comment("// ", ed.Description)
	g.writer.line("enum ", strcase.ToPascalCase(ed.Name), " {")

	for _, v := range ed.Values {
		g.writer.comment(indent+"// ", v.Description)
		g.writer.line(indent, strcase.ToUpperSnakeCase(v.Name), " = ", strconv.Itoa(v.Index), ";")
	}

	g.writer.line("}")
	g.writer.line()
}

func (g *protobufGenerator) writeUnion(ud *widl.UnionDefinition) error {
	g.writer.comment("// ", ud.Description)
	g.writer.line("message ", strcase.ToPascalCase(ud.Name), " {")
	g.writer.line(indent, "oneof oneof {")

	for i, t := range ud.Types {
		sig, err := TypeSignature(t)
		if err != nil {
			return err
		}
		g.writer.line(indent, indent, sig, " ", strcase.ToSnakeCase(memberName(t)), "_value = ", strconv.Itoa(i+1), ";")
	}

	g.writer.line(indent, "}")
	g.writer.line("}")
	g.writer.line()
	return nil
}

func fieldNumber(field *widl.FieldDefinition) (int, error) {
	a, ok := field.Annotations.Get(widl.FieldNumAnnotation)
	if !ok {
		return 0, fmt.Errorf("field %s: %w", field.Name, ErrMissingFieldNum)
	}
	n, err := a.Int()
	if err != nil {
		return 0, fmt.Errorf("field %s: %w: %v", field.Name, ErrMissingFieldNum, err)
	}
	return n, nil
}

// memberName is the schema name a union member is known by. Named types use
// their name; composite types use their schema spelling reduced to a word.
func memberName(t widl.Type) string {
	switch t := t.(type) {
	case *widl.Named:
		return t.Name
	case *widl.List:
		return memberName(t.Element) + "_list"
	case *widl.Map:
		return memberName(t.Key) + "_" + memberName(t.Value) + "_map"
	case *widl.Optional:
		return memberName(t.Type)
	default:
		return "unknown"
	}
}
