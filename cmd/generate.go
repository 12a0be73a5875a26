package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkedy/widl-grpc/internal/protocheck"
	"github.com/pkedy/widl-grpc/protobuf"
	"github.com/pkedy/widl-grpc/widl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultSkipAnnotation = "nocodegen"

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <schema.yaml>",
	Short: "Generate a proto3 file from a schema document",
	Long: `Load a WIDL schema document in YAML form and emit the equivalent proto3 definition.
Services, messages, enums and unions keep their declaration order. Operations with
more than one parameter get a synthesized <Operation>Request message at the end of the file.
The result is written to stdout or to a file via -o/--output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generateOptionsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		opts.Logger = log.WithField("schema", args[0])

		doc, err := widl.LoadFile(args[0])
		if err != nil {
			return err
		}

		content, err := protobuf.Render(doc, opts.Options)
		if err != nil {
			return err
		}

		if opts.check {
			if _, err := protocheck.Check(outputName(opts.output), content, log); err != nil {
				return err
			}
		}

		if err := writeOutput(cmd.OutOrStdout(), opts.output, content); err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"schema": args[0],
			"output": outputName(opts.output),
		}).Debug("generated proto")
		return nil
	},
}

type generateOptions struct {
	protobuf.Options
	output string
	check  bool
}

func generateOptionsFromFlags(flags *pflag.FlagSet) (*generateOptions, error) {
	opts := &generateOptions{}
	var err error

	if opts.output, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if opts.check, err = flags.GetBool("check"); err != nil {
		return nil, err
	}
	if opts.PackageName, err = flags.GetString("package"); err != nil {
		return nil, err
	}
	if opts.GoPackage, err = flags.GetString("go-package"); err != nil {
		return nil, err
	}

	roles, err := flags.GetStringSlice("role")
	if err != nil {
		return nil, err
	}
	skip, err := flags.GetString("skip-annotation")
	if err != nil {
		return nil, err
	}

	filters := []protobuf.HandlerFilter{protobuf.RoleNames(roles...)}
	if skip != "" {
		filters = append(filters, protobuf.ExcludeAnnotated(skip))
	}
	opts.Filter = protobuf.AllOf(filters...)

	return opts, nil
}

// writeOutput writes content to path, or to stdout when path is empty. The
// error from closing the file is reported since it may carry a failed flush.
func writeOutput(stdout io.Writer, path, content string) (err error) {
	writer := stdout

	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close %s: %w", path, cerr)
			}
		}()
		writer = file
	}

	if _, err := io.WriteString(writer, content); err != nil {
		return fmt.Errorf("failed to write proto: %w", err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "<stdout>"
	}
	return path
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringP("output", "o", "", "write the generated proto to a file")
	flags.String("package", "", "proto package name (defaults to the schema namespace)")
	flags.String("go-package", "", "value for option go_package")
	flags.StringSlice("role", nil, "only emit these roles as services (repeatable)")
	flags.String("skip-annotation", defaultSkipAnnotation, "skip roles and operations carrying this annotation")
	flags.Bool("check", false, "parse the generated proto before writing it")
}
