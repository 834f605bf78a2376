package pagination

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name      string
		query     string
		want      Params
		wantError bool
	}{
		{name: "valid parameters", query: "page=2&limit=30", want: Params{Page: 2, Limit: 30}},
		{name: "no parameters (use defaults)", query: "", want: Params{Page: 1, Limit: 20}},
		{name: "limit at maximum", query: "limit=100", want: Params{Page: 1, Limit: 100}},
		{name: "zero page", query: "page=0", wantError: true},
		{name: "negative page", query: "page=-1", wantError: true},
		{name: "non-numeric page", query: "page=abc", wantError: true},
		{name: "limit above maximum", query: "limit=101", wantError: true},
		{name: "zero limit", query: "limit=0", wantError: true},
		{name: "page whose offset overflows", query: "page=9223372036854775807&limit=2", wantError: true},
		{name: "page beyond int range", query: "page=99999999999999999999", wantError: true},
		{name: "max int page with limit 1", query: "page=" + strconv.Itoa(math.MaxInt) + "&limit=1", want: Params{Page: math.MaxInt, Limit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/authors?"+tt.query, nil)

			got, err := ParseQueryParams(req, config)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid query parameter")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryParams_ZeroConfigUsesDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/authors", nil)

	got, err := ParseQueryParams(req, Config{})
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Limit: DefaultConfig().DefaultLimit}, got)
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name         string
		defaultLimit string
		maxLimit     string
		want         Config
	}{
		{name: "unset", want: DefaultConfig()},
		{name: "overrides", defaultLimit: "10", maxLimit: "30", want: Config{DefaultPage: 1, DefaultLimit: 10, MaxLimit: 30}},
		{name: "default above max", defaultLimit: "40", maxLimit: "30", want: DefaultConfig()},
		{name: "non-positive", defaultLimit: "0", want: DefaultConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PAGINATION_DEFAULT_LIMIT", tt.defaultLimit)
			t.Setenv("PAGINATION_MAX_LIMIT", tt.maxLimit)
			assert.Equal(t, tt.want, LoadFromEnv())
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{10, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		params   Params
		want     []int
		wantMeta Metadata
	}{
		{
			name:     "first page",
			params:   Params{Page: 1, Limit: 2},
			want:     []int{1, 2},
			wantMeta: Metadata{Total: 5, Page: 1, Limit: 2, TotalPages: 3},
		},
		{
			name:     "last partial page",
			params:   Params{Page: 3, Limit: 2},
			want:     []int{5},
			wantMeta: Metadata{Total: 5, Page: 3, Limit: 2, TotalPages: 3},
		},
		{
			name:     "page past the end",
			params:   Params{Page: 4, Limit: 2},
			want:     []int{},
			wantMeta: Metadata{Total: 5, Page: 4, Limit: 2, TotalPages: 3},
		},
		{
			name:     "max int page",
			params:   Params{Page: math.MaxInt, Limit: 2},
			want:     []int{},
			wantMeta: Metadata{Total: 5, Page: math.MaxInt, Limit: 2, TotalPages: 3},
		},
		{
			name:     "max int page with limit 1",
			params:   Params{Page: math.MaxInt, Limit: 1},
			want:     []int{},
			wantMeta: Metadata{Total: 5, Page: math.MaxInt, Limit: 1, TotalPages: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Window(items, tt.params)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestWindow_Empty(t *testing.T) {
	got, meta := Window([]string{}, Params{Page: 1, Limit: 10})

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("11+"))
	RecordRequest(42)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("11+")))
}
