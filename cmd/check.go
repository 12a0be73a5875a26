package cmd

import (
	"fmt"
	"os"

	"github.com/pkedy/widl-grpc/internal/protocheck"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.proto>",
	Short: "Check a proto file for syntax errors",
	Long: `Parse a proto file and report syntax errors. Imports and type references are not resolved,
so files produced by generate can be checked without their dependencies.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// #nosec G304 - the path is supplied by the user on purpose
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		summary, err := protocheck.Check(args[0], string(content), log)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (package %s, %d services, %d messages, %d enums)\n",
			args[0], summary.Package, len(summary.Services), len(summary.Messages), len(summary.Enums))
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
