// Package postgrest turns query intent into request builders that follow the
// PostgREST URL conventions: column filters (col=op.value), boolean groups
// (and=(...)), projection (select), ordering and Range-header paging.
//
// Values are interpolated verbatim. Callers must pre-sanitize values that
// contain the separators of the filter grammar ('.', ',', '(' and ')').
// Filters on the same key overwrite each other (the query merge is
// right-biased); use And/Or/Not to combine several conditions on one column.
package postgrest

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/ontrail/internal/client/request"
	"github.com/dmitrijs2005/ontrail/internal/common"
)

// Filter operators.
const (
	OpEq    = "eq"
	OpGt    = "gt"
	OpLt    = "lt"
	OpGte   = "gte"
	OpLte   = "lte"
	OpLike  = "like"
	OpIlike = "ilike"
	OpIs    = "is"
	OpIn    = "in"
)

// Match emits an equality filter for every entry of params.
func Match(params request.Params) request.Builder {
	q := make(request.Params, len(params))
	for k, v := range params {
		q[k] = OpEq + "." + v
	}
	return request.WithQuery(q)
}

// Select sets the projection after stripping all whitespace from columns.
// An empty column list selects everything and leaves the request untouched.
func Select(columns string) request.Builder {
	if columns == "" {
		return request.Identity
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, columns)
	return request.WithQuery(request.Params{"select": stripped})
}

// Order sorts by property, e.g. order=name.asc.nullsfirst.
func Order(property string, ascending, nullsFirst bool) request.Builder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	nulls := "nullslast"
	if nullsFirst {
		nulls = "nullsfirst"
	}
	return request.WithQuery(request.Params{"order": property + "." + dir + "." + nulls})
}

// OrderDesc is Order with the defaults: descending, nulls last.
func OrderDesc(property string) request.Builder {
	return Order(property, false, false)
}

// Range asks for items from..to inclusive. to == 0 leaves the range open-ended.
func Range(from, to int) request.Builder {
	end := ""
	if to != 0 {
		end = fmt.Sprint(to)
	}
	return request.WithHeader(request.Params{
		common.HeaderRange:     fmt.Sprintf("%d-%s", from, end),
		common.HeaderRangeUnit: "items",
	})
}

// Single demands a single object; the server answers 406 otherwise.
func Single() request.Builder {
	return request.WithHeader(request.Params{common.HeaderPrefer: "plurality=singular"})
}

// ObjectAccept asks for the first row as a bare JSON object instead of an array.
func ObjectAccept() request.Builder {
	return request.WithHeader(request.Params{common.HeaderAccept: common.MediaTypePgrstObject})
}

func filter(op string) func(column string, value any) request.Builder {
	return func(column string, value any) request.Builder {
		return request.WithQuery(request.Params{column: op + "." + formatValue(value)})
	}
}

var (
	Eq    = filter(OpEq)
	Gt    = filter(OpGt)
	Lt    = filter(OpLt)
	Gte   = filter(OpGte)
	Lte   = filter(OpLte)
	Like  = filter(OpLike)
	Ilike = filter(OpIlike)
	Is    = filter(OpIs)
	// In takes a slice; its elements are comma-joined: in.1,2,3
	In = filter(OpIn)
)

// Condition is one member of a boolean group: <Column>.<Filter>.<Value>.
type Condition struct {
	Column string
	Filter string
	Value  any
}

func (c Condition) String() string {
	return c.Column + "." + c.Filter + "." + formatValue(c.Value)
}

func boolean(operator string) func(conds ...Condition) request.Builder {
	return func(conds ...Condition) request.Builder {
		parts := make([]string, len(conds))
		for i, c := range conds {
			parts[i] = c.String()
		}
		return request.WithQuery(request.Params{operator: "(" + strings.Join(parts, ",") + ")"})
	}
}

var (
	Not = boolean("not")
	And = boolean("and")
	Or  = boolean("or")
)

// formatValue renders value the way it appears in a filter. Slices and arrays
// are comma-joined, nil renders as null.
func formatValue(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.([]string); ok {
		return strings.Join(s, ",")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Sprint(value)
	}
	if _, isBytes := value.([]byte); isBytes {
		return string(value.([]byte))
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = formatValue(rv.Index(i).Interface())
	}
	return strings.Join(parts, ",")
}
