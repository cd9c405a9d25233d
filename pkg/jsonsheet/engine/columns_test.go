package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// rowOf builds a row of text values from alternating key/value pairs.
func rowOf(pairs ...string) *models.Row {
	r := models.NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], models.Text(pairs[i+1]))
	}
	return r
}

func TestUniverseDiscoveryOrder(t *testing.T) {
	headers := []string{"id", "name", "  ", "city"}
	rows := []*models.Row{
		rowOf("zip", "1", "name", "x"),
		rowOf("id", "2", "country", "y"),
	}

	// Existing headers first (blank and PK dropped), then new keys in
	// row-then-key first-occurrence order.
	got := Universe(headers, rows, []string{"id"})
	assert.Equal(t, []string{"name", "city", "zip", "id", "country"}, got)
}

func TestUniverseEmpty(t *testing.T) {
	assert.Empty(t, Universe(nil, nil, nil))
}

func TestFilterInactiveIsIdentity(t *testing.T) {
	f, err := NewFilterSpec(nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, f.Active())

	universe := []string{"a", "b", "c"}
	assert.Equal(t, universe, f.Apply(universe, nil))
}

func TestFilterRules(t *testing.T) {
	f, err := NewFilterSpec(
		[]string{"exact"},
		[]string{`^meta\.`},
		[]string{"addr"},
	)
	require.NoError(t, err)
	require.True(t, f.Active())

	universe := []string{"exact", "meta.created", "home_address", "other"}
	assert.Equal(t,
		[]string{"exact", "meta.created", "home_address"},
		f.Apply(universe, nil))
}

func TestFilterRegexUnanchored(t *testing.T) {
	f, err := NewFilterSpec(nil, []string{"mid"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_mid_b"}, f.Apply([]string{"a_mid_b", "other"}, nil))
}

func TestFilterRetainsPrimaryKeys(t *testing.T) {
	f, err := NewFilterSpec([]string{"name"}, nil, nil)
	require.NoError(t, err)

	got := f.Apply([]string{"id", "name", "age"}, []string{"id"})
	assert.Equal(t, []string{"id", "name"}, got)
}

func TestFilterIdempotent(t *testing.T) {
	f, err := NewFilterSpec([]string{"name"}, nil, []string{"c."})
	require.NoError(t, err)

	universe := []string{"id", "name", "c.1", "c.2", "age"}
	once := f.Apply(universe, []string{"id"})
	twice := f.Apply(once, []string{"id"})
	assert.Equal(t, once, twice)
}

func TestFilterBadRegex(t *testing.T) {
	_, err := NewFilterSpec(nil, []string{"("}, nil)
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "include_regex", cerr.Field)
	assert.Equal(t, "(", cerr.Pattern)
}

func TestOrderBadRegex(t *testing.T) {
	_, err := NewOrderSpec(true, nil, []string{"["}, nil, "existing")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "order_regex", cerr.Field)
}

func TestOrderGroups(t *testing.T) {
	o, err := NewOrderSpec(true,
		[]string{"name", "ghost"}, // ghost is not in the universe
		[]string{`^meta\.`},
		[]string{"addr"},
		"existing")
	require.NoError(t, err)

	universe := []string{"name", "meta.b", "meta.a", "home_addr", "zip", "id"}
	got := o.Columns(universe, []string{"id"})
	assert.Equal(t, []string{"id", "name", "meta.b", "meta.a", "home_addr", "zip"}, got)
}

func TestOrderRegexGroupsInListOrder(t *testing.T) {
	o, err := NewOrderSpec(false, nil, []string{"^b", "^a"}, nil, "none")
	require.NoError(t, err)

	universe := []string{"a1", "b1", "a2", "b2"}
	got := o.Columns(universe, nil)
	assert.Equal(t, []string{"b1", "b2", "a1", "a2"}, got)
}

func TestOrderRestAlpha(t *testing.T) {
	o, err := NewOrderSpec(true, nil, nil, nil, "alpha")
	require.NoError(t, err)

	universe := []string{"c.10", "c.2", "b"}
	got := o.Columns(universe, nil)
	assert.Equal(t, []string{"b", "c.2", "c.10"}, got)
}

func TestOrderRestNoneDropsRemainder(t *testing.T) {
	o, err := NewOrderSpec(true, []string{"keep"}, nil, nil, "none")
	require.NoError(t, err)

	got := o.Columns([]string{"keep", "drop1", "drop2"}, []string{"id"})
	assert.Equal(t, []string{"id", "keep"}, got)
}

func TestOrderPKLastWhenNotFirst(t *testing.T) {
	o, err := NewOrderSpec(false, nil, nil, nil, "none")
	require.NoError(t, err)

	// Primary keys still appear even when every group skips them.
	got := o.Columns([]string{"a", "b"}, []string{"id"})
	assert.Equal(t, []string{"id"}, got)
}

func TestOrderPKNotDuplicated(t *testing.T) {
	o, err := NewOrderSpec(false, []string{"id"}, nil, nil, "existing")
	require.NoError(t, err)

	got := o.Columns([]string{"id", "name"}, []string{"id"})
	assert.Equal(t, []string{"id", "name"}, got)
}

func TestParseRestPolicy(t *testing.T) {
	assert.Equal(t, RestAlpha, ParseRestPolicy("Alpha"))
	assert.Equal(t, RestNone, ParseRestPolicy("none"))
	assert.Equal(t, RestExisting, ParseRestPolicy("existing"))
	// Unrecognized values fall back to existing.
	assert.Equal(t, RestExisting, ParseRestPolicy("bogus"))
}

func TestOrderDeterministic(t *testing.T) {
	universe := []string{"name", "meta.b", "meta.a", "zip", "id"}
	build := func() []string {
		o, err := NewOrderSpec(true, []string{"name"}, []string{`^meta\.`}, nil, "alpha")
		require.NoError(t, err)
		return o.Columns(universe, []string{"id"})
	}
	assert.Equal(t, build(), build())
}
