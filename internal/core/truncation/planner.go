package truncation

import "strings"

// PlanInput contains pre-fetched data for a truncation run.
type PlanInput struct {
	Tables     []string // as returned by the connection, possibly "schema.table"
	Namespaces []string // requested schemas, the first one is the default
	Exclude    []string // bookkeeping tables that are never truncated
}

// Plan lists the tables a run truncates and the ones it leaves alone.
type Plan struct {
	Truncate []string
	Skip     []string
}

// GeneratePlan filters the discovered tables.
// This is a pure function - all input data must be pre-fetched.
//
// Names in the default namespace lose their qualifier ("public.users"
// becomes "users"); names in other namespaces keep it. Exclusions match
// the unqualified name, whatever the namespace.
func GeneratePlan(input PlanInput) Plan {
	exclude := make(map[string]struct{}, len(input.Exclude))
	for _, t := range input.Exclude {
		exclude[t] = struct{}{}
	}

	defaultPrefix := ""
	if len(input.Namespaces) > 0 && input.Namespaces[0] != "" {
		defaultPrefix = input.Namespaces[0] + "."
	}

	var plan Plan
	for _, table := range input.Tables {
		if defaultPrefix != "" {
			table = strings.TrimPrefix(table, defaultPrefix)
		}
		if _, ok := exclude[Unqualified(table)]; ok {
			plan.Skip = append(plan.Skip, table)
			continue
		}
		plan.Truncate = append(plan.Truncate, table)
	}
	return plan
}

// Unqualified strips any schema qualifier from table.
func Unqualified(table string) string {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[i+1:]
	}
	return table
}
