package journal

import (
	"strings"
	"time"
)

// FilterPipeline decides whether a normalised entry survives into the run's
// entry log. It is built once from Config and never mutated afterward: the
// zero value of every dimension means "no constraint on that dimension".
type FilterPipeline struct {
	afterLogon time.Time
	hasLogon   bool

	afterDate time.Time
	hasDate   bool

	names     []string
	reasons   []string
	ids       []string
	paths     []string
	recursive bool
}

// FilterOptions configures one FilterPipeline. Every slice field is OR'd
// internally (an entry matches the dimension if it matches any element);
// dimensions themselves are AND'd together.
type FilterOptions struct {
	AfterLogon time.Time
	AfterDate  time.Time
	Names      []string
	Reasons    []string
	IDs        []string
	Paths      []string
	Recursive  bool
}

// NewFilterPipeline builds an immutable FilterPipeline from opts.
func NewFilterPipeline(opts FilterOptions) *FilterPipeline {
	return &FilterPipeline{
		afterLogon: opts.AfterLogon,
		hasLogon:   !opts.AfterLogon.IsZero(),
		afterDate:  opts.AfterDate,
		hasDate:    !opts.AfterDate.IsZero(),
		names:      opts.Names,
		reasons:    opts.Reasons,
		ids:        opts.IDs,
		paths:      opts.Paths,
		recursive:  opts.Recursive,
	}
}

// Match reports whether entry survives every configured dimension.
func (f *FilterPipeline) Match(entry NormalisedEntry) bool {
	if f.hasLogon && entry.Timestamp.Before(f.afterLogon) {
		return false
	}
	if f.hasDate && entry.Timestamp.Before(f.afterDate) {
		return false
	}
	if len(f.names) > 0 && !matchAny(f.names, entry.Name) {
		return false
	}
	if len(f.reasons) > 0 && !matchAny(f.reasons, entry.Reasons) {
		return false
	}
	if len(f.ids) > 0 && !matchAny(f.ids, entry.FileID.String()) {
		return false
	}
	if len(f.paths) > 0 && !f.matchPath(entry.Directory) {
		return false
	}
	return true
}

// matchAny reports whether haystack contains any of candidates as a
// substring.
func matchAny(candidates []string, haystack string) bool {
	for _, c := range candidates {
		if strings.Contains(haystack, c) {
			return true
		}
	}
	return false
}

// matchPath applies the path dimension's own rule: non-recursive filters
// require an exact match or a match at any depth below the filter (dir ==
// filter or dir starts with filter+"\"); recursive filters fall back to
// plain substring containment anywhere in dir.
func (f *FilterPipeline) matchPath(dir string) bool {
	for _, p := range f.paths {
		if f.recursive {
			if strings.Contains(dir, p) {
				return true
			}
			continue
		}
		if dir == p || strings.HasPrefix(dir, p+`\`) {
			return true
		}
	}
	return false
}
