package protobuf

import "github.com/pkedy/widl-grpc/widl"

// HandlerFilter decides which roles and operations become services and rpcs.
// A rejected role produces no output at all; a rejected operation produces
// neither an rpc line nor a synthesized request message.
type HandlerFilter interface {
	IncludeRole(role *widl.Role) bool
	IncludeOperation(role *widl.Role, op *widl.Operation) bool
}

type allHandlers struct{}

func (allHandlers) IncludeRole(*widl.Role) bool                       { return true }
func (allHandlers) IncludeOperation(*widl.Role, *widl.Operation) bool { return true }

// AllHandlers includes every role and operation.
func AllHandlers() HandlerFilter {
	return allHandlers{}
}

type roleNames map[string]struct{}

func (r roleNames) IncludeRole(role *widl.Role) bool {
	_, ok := r[role.Name]
	return ok
}

func (roleNames) IncludeOperation(*widl.Role, *widl.Operation) bool { return true }

// RoleNames includes only the named roles. With no names it includes all.
func RoleNames(names ...string) HandlerFilter {
	if len(names) == 0 {
		return AllHandlers()
	}
	r := make(roleNames, len(names))
	for _, n := range names {
		r[n] = struct{}{}
	}
	return r
}

type excludeAnnotated string

func (a excludeAnnotated) IncludeRole(role *widl.Role) bool {
	return !role.Annotations.Has(string(a))
}

func (a excludeAnnotated) IncludeOperation(_ *widl.Role, op *widl.Operation) bool {
	return !op.Annotations.Has(string(a))
}

// ExcludeAnnotated drops roles and operations carrying the named annotation.
func ExcludeAnnotated(annotation string) HandlerFilter {
	return excludeAnnotated(annotation)
}

type allOf []HandlerFilter

func (fs allOf) IncludeRole(role *widl.Role) bool {
	for _, f := range fs {
		if !f.IncludeRole(role) {
			return false
		}
	}
	return true
}

func (fs allOf) IncludeOperation(role *widl.Role, op *widl.Operation) bool {
	for _, f := range fs {
		if !f.IncludeOperation(role, op) {
			return false
		}
	}
	return true
}

// AllOf includes a role or operation only when every filter does.
func AllOf(filters ...HandlerFilter) HandlerFilter {
	return allOf(filters)
}
