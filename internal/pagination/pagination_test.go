package pagination

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultLimit int
		want         Params
	}{
		{"no limit, no default", "", 0, Params{}},
		{"limit and offset", "limit=5&offset=10", 0, Params{Enabled: true, Limit: 5, Offset: 10}},
		{"default limit", "offset=3", 20, Params{Enabled: true, Limit: 20, Offset: 3}},
		{"clamped to max", "limit=1000", 0, Params{Enabled: true, Limit: 100}},
		{"malformed limit", "limit=abc", 0, Params{}},
		{"negative offset", "limit=2&offset=-4", 0, Params{Enabled: true, Limit: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FromQuery(q, tt.defaultLimit, 100))
		})
	}
}

func TestNewEnvelopeLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.test/v1/posts/?limit=2&offset=2", nil)
	env := NewEnvelope(r, Params{Enabled: true, Limit: 2, Offset: 2}, 5, []int{3, 4})

	assert.EqualValues(t, 5, env.Count)
	require.NotNil(t, env.Next)
	assert.Equal(t, "http://api.test/v1/posts/?limit=2&offset=4", *env.Next)
	require.NotNil(t, env.Previous)
	assert.Equal(t, "http://api.test/v1/posts/?limit=2", *env.Previous)
}

func TestNewEnvelopeLastPage(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.test/v1/posts/?limit=2", nil)
	env := NewEnvelope[int](r, Params{Enabled: true, Limit: 2}, 2, nil)

	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
	assert.NotNil(t, env.Results)
}
