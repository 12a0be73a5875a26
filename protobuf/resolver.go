package protobuf

import (
	"fmt"

	"github.com/pkedy/widl-grpc/widl"
)

// TypeSignature renders t the way it appears in a proto3 field or rpc
// declaration. Named types outside the scalar table are assumed to be
// message or enum references and are returned unchanged.
//
// Map keys and values are not checked: proto3 rejects float, bytes and
// message keys as well as repeated values, and such types are emitted as is.
func TypeSignature(t widl.Type) (string, error) {
	switch t := t.(type) {
	case *widl.Named:
		if proto, ok := scalarTypes[t.Name]; ok {
			return proto, nil
		}
		return t.Name, nil

	case *widl.List:
		elem, err := TypeSignature(t.Element)
		if err != nil {
			return "", err
		}
		return "repeated " + elem, nil

	case *widl.Map:
		key, err := TypeSignature(t.Key)
		if err != nil {
			return "", err
		}
		value, err := TypeSignature(t.Value)
		if err != nil {
			return "", err
		}
		return "map<" + key + ", " + value + ">", nil

	case *widl.Optional:
		inner, err := TypeSignature(t.Type)
		if err != nil {
			return "", err
		}
		return "optional " + inner, nil

	case nil:
		return "", fmt.Errorf("%w: nil type", ErrUnsupportedType)

	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, t)
	}
}
