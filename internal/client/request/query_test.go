package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{
			name: "empty",
			d:    New(MethodGet, "/", testHost),
			want: "",
		},
		{
			name: "sorted pairs",
			d:    Apply(New(MethodGet, "/", testHost), WithQuery(Params{"b": "2", "a": "1"})),
			want: "a=1&b=2",
		},
		{
			name: "percent encoding like encodeURIComponent",
			d:    Apply(New(MethodGet, "/", testHost), WithQuery(Params{"name": "eq.Big Pine&co/é", "not": "(a.eq.1,b.eq.2)"})),
			want: "name=eq.Big%20Pine%26co%2F%C3%A9&not=(a.eq.1%2Cb.eq.2)",
		},
		{
			name: "flag renders bare key",
			d:    Apply(New(MethodGet, "/", testHost), WithQuery(Params{"a": "1"}), WithQueryFlag("count")),
			want: "a=1&count",
		},
		{
			name: "empty value keeps equals sign",
			d:    Apply(New(MethodGet, "/", testHost), WithQuery(Params{"a": ""})),
			want: "a=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeQuery(tt.d))
		})
	}
}

func TestURL(t *testing.T) {
	d := New(MethodGet, "/trails", testHost)
	assert.Equal(t, "http://localhost:3000/trails", URL(d))

	d = WithQuery(Params{"id": "eq.5"})(d)
	assert.Equal(t, "http://localhost:3000/trails?id=eq.5", URL(d))
}
