package protobuf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkedy/widl-grpc/widl"
	"github.com/sirupsen/logrus"
)

// Options control how a document is rendered.
type Options struct {
	// PackageName overrides the document namespace in the package statement.
	PackageName string
	// GoPackage adds an `option go_package` statement when set.
	GoPackage string
	// Filter selects the roles and operations to emit. Nil means all.
	Filter HandlerFilter
	// Logger receives debug output about skipped and synthesized items.
	Logger logrus.FieldLogger
}

// Render returns the proto3 source for doc.
//
// Rendering stops at the first field without a fieldnum annotation or the
// first type it cannot resolve; the returned error wraps ErrMissingFieldNum
// or ErrUnsupportedType respectively.
func Render(doc *widl.Document, opts Options) (string, error) {
	g := newProtobufGenerator(opts)
	if err := g.generate(doc); err != nil {
		return "", err
	}
	return g.writer.String(), nil
}

// WriteProto renders doc and writes it to w. Nothing is written when
// rendering fails.
func WriteProto(w io.Writer, doc *widl.Document, opts Options) error {
	content, err := Render(doc, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write proto: %w", err)
	}
	return nil
}

type GenerateOptions struct {
	Options
	OutputDir string
	Filename  string
}

// GenerateProtobuf renders doc into OutputDir/Filename. OutputDir defaults to
// ./proto and Filename to the last segment of the package name plus .proto.
func GenerateProtobuf(opts GenerateOptions, doc *widl.Document) error {
	if opts.OutputDir == "" {
		opts.OutputDir = "./proto"
	}
	if opts.Filename == "" {
		opts.Filename = defaultFilename(opts.PackageName, doc.Namespace.Name)
	}

	content, err := Render(doc, opts.Options)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filePath := filepath.Join(opts.OutputDir, opts.Filename)
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write proto file: %w", err)
	}

	return nil
}

func defaultFilename(names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if name != "" {
			return name + ".proto"
		}
	}
	return "generated.proto"
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
