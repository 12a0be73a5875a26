package protobuf

import (
	"github.com/pkedy/widl-grpc/internal/strcase"
	"github.com/pkedy/widl-grpc/widl"
)

// synthesizeRequest bundles the parameters of a non-unary operation into a
// message named <Operation>Request. Parameters keep their order, types,
// defaults and annotations, so each parameter's fieldnum becomes the wire
// number of its field.
func synthesizeRequest(op *widl.Operation) *widl.TypeDefinition {
	name := strcase.ToPascalCase(op.Name)

	fields := make([]*widl.FieldDefinition, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		fields = append(fields, &widl.FieldDefinition{
			Name:        p.Name,
			Description: p.Description,
			Type:        p.Type,
			Default:     p.Default,
			Annotations: p.Annotations,
		})
	}

	return &widl.TypeDefinition{
		Name:        name + "Request",
		Description: "Request for the " + name + " operation.",
		Annotations: op.Annotations,
		Fields:      fields,
	}
}
