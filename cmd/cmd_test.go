package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkedy/widl-grpc/internal/test"
	"github.com/pkedy/widl-grpc/protobuf"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns what it wrote to stdout.
// Flags are reset first because the command tree is shared between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}
	resetFlags(rootCmd.PersistentFlags())

	var out bytes.Buffer
	origOut := rootCmd.OutOrStdout()
	origErr := rootCmd.ErrOrStderr()

	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(origOut)
		rootCmd.SetErr(origErr)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func TestGenerateCommand(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "calculator.proto")

	if _, err := execute(t, "generate", "--check", "--output", outputPath, test.FixturePath(t, "calculator.yaml")); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}

	want := test.ReadGolden(t, "calculator.proto.golden")
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateCommand_FlagsToStdout(t *testing.T) {
	got, err := execute(t,
		"generate",
		"--role", "Calculator",
		"--skip-annotation", "",
		"--package", "demo.v1",
		"--go-package", "example.com/demo/v1",
		"--log-level", "debug",
		test.FixturePath(t, "calculator.yaml"),
	)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	for _, want := range []string{
		"package demo.v1;\n\noption go_package = \"example.com/demo/v1\";\n",
		"  rpc DebugDump(DebugDumpRequest) returns (string);\n",
		"message DebugDumpRequest {\n}\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Internal") || strings.Contains(got, "Reset") {
		t.Errorf("output contains role excluded by --role:\n%s", got)
	}
}

func TestGenerateCommand_MissingFieldNum(t *testing.T) {
	out, err := execute(t, "generate", test.FixturePath(t, "missing_fieldnum.yaml"))
	if !errors.Is(err, protobuf.ErrMissingFieldNum) {
		t.Fatalf("execute error = %v, want ErrMissingFieldNum", err)
	}
	if out != "" {
		t.Errorf("expected no output on failure, got:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	got, err := execute(t, "check", test.FixturePath(t, "calculator.proto.golden"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	want := test.FixturePath(t, "calculator.proto.golden") + ": ok (package pkg.demo, 1 services, 5 messages, 1 enums)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckCommand_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.proto")
	if err := os.WriteFile(path, []byte("syntax = \"proto3\";\nmessage {\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "check", path); err == nil {
		t.Fatal("expected check to fail on a malformed file")
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.proto")
	var stdout bytes.Buffer
	if err := writeOutput(&stdout, path, "syntax = \"proto3\";\n"); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("writeOutput() wrote %q to stdout when a path was given", stdout.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "syntax = \"proto3\";\n" {
		t.Errorf("file content = %q", got)
	}

	stdout.Reset()
	if err := writeOutput(&stdout, "", "package x;\n"); err != nil {
		t.Fatalf("writeOutput() to stdout error = %v", err)
	}
	if stdout.String() != "package x;\n" {
		t.Errorf("stdout = %q", stdout.String())
	}

	missingDir := filepath.Join(t.TempDir(), "missing", "out.proto")
	if err := writeOutput(&stdout, missingDir, "x"); err == nil {
		t.Error("writeOutput() into a missing directory returned no error")
	}
}
