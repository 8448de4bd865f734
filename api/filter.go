package api

import (
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`[-_\s]+`)

// Normalize canonicalizes reference-data names for comparison: lower-case,
// trimmed, with runs of separators collapsed to a single space, so that
// "Heat_Treatment", "heat-treatment" and " heat treatment " all agree.
func Normalize(s string) string {
	return separatorRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// ResolveOperationTypeID finds the id of the operation type whose name
// matches (after normalization). Returns 0 when there is no match.
func ResolveOperationTypeID(opTypes []OperationType, name string) int64 {
	want := Normalize(name)
	if want == "" {
		return 0
	}
	for _, op := range opTypes {
		if Normalize(op.OperationName) == want {
			return op.ID
		}
	}
	return 0
}

// FilterMachines returns the machines eligible for the selected operation
// type. Machines match by foreign key against the resolved operation-type
// id; a machine without an id relation falls back to comparing its
// operation-type name. An empty selection returns everything.
func FilterMachines(machines []Machine, opTypes []OperationType, selected string) []Machine {
	want := Normalize(selected)
	if want == "" {
		return machines
	}

	wantID := ResolveOperationTypeID(opTypes, selected)

	var out []Machine
	for _, m := range machines {
		if m.OperationTypeID != 0 && wantID != 0 {
			if m.OperationTypeID == wantID {
				out = append(out, m)
			}
			continue
		}
		if Normalize(m.OperationTypeName) == want {
			out = append(out, m)
		}
	}
	return out
}

// ContainsMachine reports whether name is still present in machines. The
// estimate form uses it to drop a previously selected machine that is no
// longer eligible after an operation-type change.
func ContainsMachine(machines []Machine, name string) bool {
	want := Normalize(name)
	if want == "" {
		return false
	}
	for _, m := range machines {
		if Normalize(m.Name) == want {
			return true
		}
	}
	return false
}
