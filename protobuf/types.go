package protobuf

import "errors"

var (
	// ErrMissingFieldNum is returned when a field or parameter that becomes a
	// message field has no usable fieldnum annotation.
	ErrMissingFieldNum = errors.New("missing fieldnum annotation")

	// ErrUnsupportedType is returned for type values the resolver does not know.
	ErrUnsupportedType = errors.New("unsupported type")
)

// emptyMessageName is the response type of operations returning no value.
const emptyMessageName = "Empty"

// scalarTypes maps schema scalar names to their proto3 spelling. Keys are
// case-sensitive.
var scalarTypes = map[string]string{
	"i8":       "int32",
	"i16":      "int32",
	"i32":      "int32",
	"i64":      "int64",
	"u8":       "uint32",
	"u16":      "uint32",
	"u32":      "uint32",
	"u64":      "uint64",
	"f32":      "float",
	"f64":      "double",
	"string":   "string",
	"bytes":    "bytes",
	"boolean":  "bool",
	"date":     "google.protobuf.Timestamp",
	"datetime": "google.protobuf.Timestamp",
	"raw":      "google.protobuf.Any",
}
