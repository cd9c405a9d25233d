package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// Universe returns every distinct candidate column name in discovery order:
// first the non-empty existing headers (excluding primary-key columns) in
// their original left-to-right order, then every key seen across rows in
// row-then-key order. The first occurrence of a name wins.
func Universe(headers []string, rows []*models.Row, pk []string) []string {
	pkSet := nameSet(pk)
	seen := make(map[string]struct{})
	var universe []string
	push := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		universe = append(universe, name)
	}

	for _, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, isPK := pkSet[h]; isPK {
			continue
		}
		push(h)
	}
	for _, r := range rows {
		for _, k := range r.Keys() {
			push(k)
		}
	}
	return universe
}

// FilterSpec is a compiled column inclusion filter. The filter is active
// when at least one rule is configured; an inactive filter keeps every
// column. Primary-key columns are always retained.
type FilterSpec struct {
	exact  map[string]struct{}
	regex  []*regexp.Regexp
	substr []string
}

// NewFilterSpec compiles the inclusion rules. A pattern that does not
// compile yields a ConfigError.
func NewFilterSpec(exact, patterns, substr []string) (FilterSpec, error) {
	regexes, err := compileAll("include_regex", patterns)
	if err != nil {
		return FilterSpec{}, err
	}
	return FilterSpec{
		exact:  nameSet(exact),
		regex:  regexes,
		substr: substr,
	}, nil
}

// Active reports whether any inclusion rule is configured.
func (f FilterSpec) Active() bool {
	return len(f.exact) > 0 || len(f.regex) > 0 || len(f.substr) > 0
}

// Allows reports whether name survives the filter. Primary-key membership
// must be checked by the caller via Apply; Allows only evaluates the rules.
func (f FilterSpec) Allows(name string) bool {
	if !f.Active() {
		return true
	}
	if _, ok := f.exact[name]; ok {
		return true
	}
	for _, re := range f.regex {
		if re.MatchString(name) {
			return true
		}
	}
	for _, sub := range f.substr {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// Apply returns the columns of universe that survive the filter, in
// universe order. Primary-key columns always survive.
func (f FilterSpec) Apply(universe, pk []string) []string {
	if !f.Active() {
		return universe
	}
	pkSet := nameSet(pk)
	var out []string
	for _, name := range universe {
		if _, isPK := pkSet[name]; isPK || f.Allows(name) {
			out = append(out, name)
		}
	}
	return out
}

// RestPolicy governs where columns not claimed by any ordering group end up.
type RestPolicy string

const (
	// RestExisting appends remaining columns in discovery order.
	RestExisting RestPolicy = "existing"
	// RestAlpha appends remaining columns in natural sort order.
	RestAlpha RestPolicy = "alpha"
	// RestNone drops remaining columns from the sheet entirely.
	RestNone RestPolicy = "none"
)

// ParseRestPolicy maps a configuration string onto a RestPolicy.
// Unrecognized values fall back to RestExisting.
func ParseRestPolicy(s string) RestPolicy {
	switch RestPolicy(strings.ToLower(s)) {
	case RestAlpha:
		return RestAlpha
	case RestNone:
		return RestNone
	default:
		return RestExisting
	}
}

// OrderSpec is a compiled column ordering policy.
type OrderSpec struct {
	// PKFirst places primary-key columns ahead of every ordering group.
	PKFirst bool

	exact  []string
	regex  []*regexp.Regexp
	substr []string
	rest   RestPolicy
}

// NewOrderSpec compiles the ordering rules. A pattern that does not
// compile yields a ConfigError.
func NewOrderSpec(pkFirst bool, exact, patterns, substr []string, rest string) (OrderSpec, error) {
	regexes, err := compileAll("order_regex", patterns)
	if err != nil {
		return OrderSpec{}, err
	}
	return OrderSpec{
		PKFirst: pkFirst,
		exact:   exact,
		regex:   regexes,
		substr:  substr,
		rest:    ParseRestPolicy(rest),
	}, nil
}

// Columns builds the final left-to-right column sequence from the filtered
// universe. Groups claim columns in turn; a column claimed by an earlier
// group is skipped by every later one:
//
//  1. primary-key columns, when PKFirst
//  2. the exact-name list, in its literal order (unknown names skipped)
//  3. each ordering regex in turn, matches in discovery order
//  4. columns containing any ordering substring, in discovery order
//  5. the remainder, per RestPolicy
//  6. primary-key columns not yet placed, when PKFirst is false
func (o OrderSpec) Columns(universe, pk []string) []string {
	seen := make(map[string]struct{})
	var columns []string
	push := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		columns = append(columns, name)
	}

	if o.PKFirst {
		for _, name := range pk {
			push(name)
		}
	}

	inUniverse := nameSet(universe)
	for _, name := range o.exact {
		if _, ok := inUniverse[name]; ok {
			push(name)
		}
	}
	for _, re := range o.regex {
		for _, name := range universe {
			if re.MatchString(name) {
				push(name)
			}
		}
	}
	if len(o.substr) > 0 {
		for _, name := range universe {
			for _, sub := range o.substr {
				if strings.Contains(name, sub) {
					push(name)
					break
				}
			}
		}
	}

	switch o.rest {
	case RestNone:
	case RestAlpha:
		var rest []string
		for _, name := range universe {
			if _, ok := seen[name]; !ok {
				rest = append(rest, name)
			}
		}
		sort.SliceStable(rest, func(i, j int) bool {
			return NaturalCompare(rest[i], rest[j]) < 0
		})
		for _, name := range rest {
			push(name)
		}
	default:
		for _, name := range universe {
			push(name)
		}
	}

	// Primary keys must appear somewhere even when they claimed no spot above.
	if !o.PKFirst {
		for _, name := range pk {
			push(name)
		}
	}
	return columns
}

func compileAll(field string, patterns []string) ([]*regexp.Regexp, error) {
	var regexes []*regexp.Regexp
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, &ConfigError{Field: field, Pattern: pat, Err: err}
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
