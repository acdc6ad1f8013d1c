package request

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/dmitrijs2005/ontrail/internal/common"
)

// Method is an HTTP verb understood by the pipeline.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
)

// Params is a string map used for query parameters and headers.
type Params map[string]string

// Descriptor describes one request. Treat it as a value: builders return
// modified copies and never touch the maps of their input.
type Descriptor struct {
	Host    string
	Method  Method
	Path    string
	Query   Params
	Headers Params
	// Flags are query keys sent without a value (?key).
	Flags []string
	Body  *string

	// bodyErr records a WithJSONBody marshal failure; Send reports it.
	bodyErr error
}

// Builder transforms a descriptor into a new one.
type Builder func(Descriptor) Descriptor

// Identity leaves the descriptor unchanged.
func Identity(d Descriptor) Descriptor { return d }

// New returns the default descriptor: JSON Accept and Content-Type headers,
// an empty query and no body.
func New(method Method, path, host string) Descriptor {
	return Descriptor{
		Host:   host,
		Method: method,
		Path:   path,
		Query:  Params{},
		Headers: Params{
			common.HeaderAccept:      common.MediaTypeJSON,
			common.HeaderContentType: common.MediaTypeJSON,
		},
	}
}

// Apply folds builders over d in order.
func Apply(d Descriptor, builders ...Builder) Descriptor {
	for _, b := range builders {
		if b == nil {
			continue
		}
		d = b(d)
	}
	return d
}

// Compose joins builders into one, applied left to right.
func Compose(builders ...Builder) Builder {
	return func(d Descriptor) Descriptor { return Apply(d, builders...) }
}

func merge(existing, updated Params) Params {
	out := make(Params, len(existing)+len(updated))
	maps.Copy(out, existing)
	maps.Copy(out, updated)
	return out
}

// WithQuery merges q into the query, overwriting same-key entries.
func WithQuery(q Params) Builder {
	return func(d Descriptor) Descriptor {
		d.Query = merge(d.Query, q)
		if len(d.Flags) > 0 {
			d.Flags = slices.DeleteFunc(slices.Clone(d.Flags), func(k string) bool {
				_, ok := q[k]
				return ok
			})
		}
		return d
	}
}

// WithQueryFlag adds keys sent without a value. A flag replaces a query
// parameter of the same name.
func WithQueryFlag(keys ...string) Builder {
	return func(d Descriptor) Descriptor {
		flags := slices.Clone(d.Flags)
		query := maps.Clone(d.Query)
		for _, k := range keys {
			delete(query, k)
			if !slices.Contains(flags, k) {
				flags = append(flags, k)
			}
		}
		d.Flags = flags
		d.Query = query
		return d
	}
}

// WithHeader merges h into the headers, overwriting same-key entries.
func WithHeader(h Params) Builder {
	return func(d Descriptor) Descriptor {
		d.Headers = merge(d.Headers, h)
		return d
	}
}

// WithBody replaces the body.
func WithBody(body string) Builder {
	return func(d Descriptor) Descriptor {
		d.Body = &body
		d.bodyErr = nil
		return d
	}
}

// WithJSONBody replaces the body with the JSON encoding of v. If v cannot be
// encoded the body is left as is and Send fails with the encoding error.
func WithJSONBody(v any) Builder {
	return func(d Descriptor) Descriptor {
		data, err := json.Marshal(v)
		if err != nil {
			d.bodyErr = err
			return d
		}
		body := string(data)
		d.Body = &body
		d.bodyErr = nil
		return d
	}
}
