package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ontrail/internal/client/postgrest"
	"github.com/dmitrijs2005/ontrail/internal/client/request"
)

var filterOps = map[string]func(column string, value any) request.Builder{
	postgrest.OpEq:    postgrest.Eq,
	postgrest.OpGt:    postgrest.Gt,
	postgrest.OpLt:    postgrest.Lt,
	postgrest.OpGte:   postgrest.Gte,
	postgrest.OpLte:   postgrest.Lte,
	postgrest.OpLike:  postgrest.Like,
	postgrest.OpIlike: postgrest.Ilike,
	postgrest.OpIs:    postgrest.Is,
	postgrest.OpIn:    postgrest.In,
}

// parseFilters turns command line arguments into builders:
//
//	select=id,name
//	order=created[.asc|.desc][.nullsfirst|.nullslast]
//	range=0-24 (or 25- for open-ended)
//	column=op.value, e.g. id=eq.5 or tag=in.a,b
func parseFilters(args []string) ([]request.Builder, error) {
	builders := make([]request.Builder, 0, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}

		var b request.Builder
		var err error
		switch key {
		case "select":
			b = postgrest.Select(value)
		case "order":
			b, err = parseOrder(value)
		case "range":
			b, err = parseRange(value)
		default:
			b, err = parseColumnFilter(key, value)
		}
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}

	return builders, nil
}

func parseOrder(value string) (request.Builder, error) {
	parts := strings.Split(value, ".")
	if parts[0] == "" {
		return nil, fmt.Errorf("order: missing column")
	}

	ascending, nullsFirst := false, false
	for _, p := range parts[1:] {
		switch p {
		case "asc":
			ascending = true
		case "desc":
			ascending = false
		case "nullsfirst":
			nullsFirst = true
		case "nullslast":
			nullsFirst = false
		default:
			return nil, fmt.Errorf("order: unknown modifier %q", p)
		}
	}
	return postgrest.Order(parts[0], ascending, nullsFirst), nil
}

func parseRange(value string) (request.Builder, error) {
	fromStr, toStr, ok := strings.Cut(value, "-")
	if !ok {
		return nil, fmt.Errorf("range: expected from-to, got %q", value)
	}
	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return nil, fmt.Errorf("range: bad start: %w", err)
	}
	to := 0
	if toStr != "" {
		if to, err = strconv.Atoi(toStr); err != nil {
			return nil, fmt.Errorf("range: bad end: %w", err)
		}
	}
	return postgrest.Range(from, to), nil
}

func parseColumnFilter(column, value string) (request.Builder, error) {
	op, operand, ok := strings.Cut(value, ".")
	if !ok {
		return nil, fmt.Errorf("%s: expected op.value, got %q", column, value)
	}
	fn, known := filterOps[op]
	if !known {
		return nil, fmt.Errorf("%s: unknown operator %q", column, op)
	}
	if op == postgrest.OpIn {
		return fn(column, strings.Split(operand, ",")), nil
	}
	return fn(column, operand), nil
}
