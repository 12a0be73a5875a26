package protobuf

import (
	"testing"

	"github.com/pkedy/widl-grpc/widl"
)

func TestHandlerFilters(t *testing.T) {
	t.Parallel()

	plain := &widl.Role{Name: "Plain"}
	marked := &widl.Role{Name: "Marked", Annotations: widl.Annotations{{Name: "internal"}}}
	op := &widl.Operation{Name: "op"}
	markedOp := &widl.Operation{Name: "markedOp", Annotations: widl.Annotations{{Name: "internal"}}}

	tests := []struct {
		name       string
		filter     HandlerFilter
		role       *widl.Role
		op         *widl.Operation
		wantRole   bool
		wantOpIncl bool
	}{
		{name: "all handlers", filter: AllHandlers(), role: marked, op: markedOp, wantRole: true, wantOpIncl: true},
		{name: "role names match", filter: RoleNames("Plain"), role: plain, op: op, wantRole: true, wantOpIncl: true},
		{name: "role names miss", filter: RoleNames("Other"), role: plain, op: op, wantRole: false, wantOpIncl: true},
		{name: "empty role names include all", filter: RoleNames(), role: plain, op: op, wantRole: true, wantOpIncl: true},
		{name: "annotated role excluded", filter: ExcludeAnnotated("internal"), role: marked, op: op, wantRole: false, wantOpIncl: true},
		{name: "annotated operation excluded", filter: ExcludeAnnotated("internal"), role: plain, op: markedOp, wantRole: true, wantOpIncl: false},
		{
			name:       "all of requires every filter",
			filter:     AllOf(RoleNames("Marked"), ExcludeAnnotated("internal")),
			role:       marked,
			op:         op,
			wantRole:   false,
			wantOpIncl: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.IncludeRole(tt.role); got != tt.wantRole {
				t.Errorf("IncludeRole(%s) = %v, want %v", tt.role.Name, got, tt.wantRole)
			}
			if got := tt.filter.IncludeOperation(tt.role, tt.op); got != tt.wantOpIncl {
				t.Errorf("IncludeOperation(%s) = %v, want %v", tt.op.Name, got, tt.wantOpIncl)
			}
		})
	}
}

func TestRender_ExcludedOperationSynthesizesNothing(t *testing.T) {
	t.Parallel()

	doc := &widl.Document{
		Namespace: widl.Namespace{Name: "filtered"},
		Roles: []*widl.Role{{
			Name: "Svc",
			Operations: []*widl.Operation{
				{Name: "kept"},
				{Name: "dropped", Annotations: widl.Annotations{{Name: "nocodegen"}}},
			},
		}},
	}

	got, err := Render(doc, Options{Filter: ExcludeAnnotated("nocodegen")})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `syntax = "proto3";

package filtered;

service Svc {
  rpc Kept(KeptRequest) returns (Empty);
}

// Request for the Kept operation.
message KeptRequest {
}

`
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
