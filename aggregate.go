package journal

import "sort"

// Aggregator groups a flat entry log into one time-ordered Aggregation per
// file id. It holds no state between calls: Aggregate is a pure function of
// its input.
type Aggregator struct{}

// NewAggregator returns an Aggregator. It exists as a type, rather than a
// bare function, so callers can hold it alongside the rest of the pipeline's
// components uniformly.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Aggregate groups entries by file id and sorts each group's events by
// timestamp ascending. The returned slice's order is unspecified; callers
// that need a deterministic order should sort it themselves.
func (a *Aggregator) Aggregate(entries []NormalisedEntry) []Aggregation {
	index := make(map[FileIdKey]int)
	var out []Aggregation

	for _, e := range entries {
		i, ok := index[e.FileID]
		if !ok {
			i = len(out)
			index[e.FileID] = i
			out = append(out, Aggregation{FileID: e.FileID})
		}
		out[i].Events = append(out[i].Events, FileEvent{
			Timestamp: e.Timestamp,
			Reasons:   e.Reasons,
			ReasonSet: e.ReasonSet,
			Name:      e.Name,
			Directory: e.Directory,
		})
	}

	for i := range out {
		events := out[i].Events
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Timestamp.Before(events[b].Timestamp)
		})
		last := events[len(events)-1]
		out[i].Name = last.Name
		out[i].Directory = last.Directory
	}

	return out
}
