package protocheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	content := `syntax = "proto3";

package pkg.demo;

service Calc {
  rpc Add(AddRequest) returns (AddResponse);
}

enum Op {
  PLUS = 0;
}

message AddRequest {
  int32 a = 1;
  map<string, int64> b = 2;
}

message Choice {
  oneof oneof {
    string text_value = 1;
  }
}
`

	got, err := Check("calc.proto", content, nil)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	want := &Summary{
		Package:  "pkg.demo",
		Services: []string{"Calc"},
		Messages: []string{"AddRequest", "Choice"},
		Enums:    []string{"Op"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_SyntaxError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing semicolon",
			content: "syntax = \"proto3\";\nmessage A {\n  int32 a = 1\n}\n",
		},
		{
			name:    "unterminated message",
			content: "syntax = \"proto3\";\nmessage A {\n  int32 a = 1;\n",
		},
		{
			name:    "label stacked on label",
			content: "syntax = \"proto3\";\nmessage A {\n  optional repeated int32 a = 1;\n}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Check("bad.proto", tt.content, nil)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Check() error = %v, want ErrSyntax", err)
			}
			if !strings.Contains(err.Error(), "bad.proto") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}
