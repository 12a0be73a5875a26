// Package protocheck parses proto source to catch syntax errors in generated
// files. It does not link: references to undeclared or imported types are
// not resolved.
package protocheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bufbuild/protocompile/ast"
	"github.com/bufbuild/protocompile/parser"
	"github.com/bufbuild/protocompile/reporter"
	"github.com/sirupsen/logrus"
)

var ErrSyntax = errors.New("proto syntax error")

// Summary lists the top-level declarations found in a file, in source order.
type Summary struct {
	Package  string
	Services []string
	Messages []string
	Enums    []string
}

// Check parses content as the file filename and reports every syntax error
// found. Warnings are logged to log, which may be nil.
func Check(filename, content string, log logrus.FieldLogger) (*Summary, error) {
	var errs []string
	rep := reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			errs = append(errs, err.Error())
			return nil
		},
		func(err reporter.ErrorWithPos) {
			if log != nil {
				log.WithField("file", filename).Warn(err.Error())
			}
		},
	)

	file, err := parser.Parse(filename, strings.NewReader(content), reporter.NewHandler(rep))
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n%s", ErrSyntax, strings.Join(errs, "\n"))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	return summarize(file), nil
}

func summarize(file *ast.FileNode) *Summary {
	s := &Summary{}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.PackageNode:
			s.Package = string(d.Name.AsIdentifier())
		case *ast.ServiceNode:
			s.Services = append(s.Services, d.Name.Val)
		case *ast.MessageNode:
			s.Messages = append(s.Messages, d.Name.Val)
		case *ast.EnumNode:
			s.Enums = append(s.Enums, d.Name.Val)
		}
	}
	return s
}
