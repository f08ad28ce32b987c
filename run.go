package journal

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config is the single value that parameterises a run: nothing in this
// package reaches for global or process-wide state, per the "construct a
// pipeline from a Config, don't reach for globals" redesign.
type Config struct {
	Volume      string
	Filter      FilterOptions
	Detectors   DetectorSet
	OnlyReplace bool
	Log         *logrus.Logger
}

// Result is everything a run produced: the full entry log (always populated,
// whatever OnlyReplace says; the caller decides whether to emit it), the
// aggregations, the three detectors' findings, and the timing
// summary spec.md requires be emitted at the end of every run.
type Result struct {
	Entries          []NormalisedEntry
	Aggregations     []Aggregation
	CopyReplaces     []Replacement
	TypeReplaces     []Replacement
	ExplorerReplaces []Replacement
	Timing           Timing
}

// Timing is the wall-clock/record-count summary emitted after every run.
type Timing struct {
	Elapsed          time.Duration
	RecordCount      int
	AggregationCount int
}

// Run opens the volume's change journal, ingests every currently available
// record, aggregates it per file id, and applies the configured pattern
// detectors. A failure to open the volume or its journal is fatal and
// returned wrapped with "open journal" context; a failure partway through reading is absorbed and the run
// completes with whatever was collected.
func Run(cfg Config) (Result, error) {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	start := time.Now()

	reader, err := OpenJournal(cfg.Volume)
	if err != nil {
		return Result{}, errors.Wrap(err, "open journal")
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			log.WithError(cerr).Warn("[-] failed to close volume handle")
		}
	}()

	cache := NewPathCache(reader.PathResolver())
	filter := NewFilterPipeline(cfg.Filter)
	ingestor := NewIngestor(cache, filter)
	ingestor.Run(reader)

	entries := ingestor.Entries()

	aggregator := NewAggregator()
	aggregations := aggregator.Aggregate(entries)

	matcher := NewPatternMatcher(cfg.Detectors)
	var copyReplaces, typeReplaces []Replacement
	for _, agg := range aggregations {
		copyReplaces = matcher.MatchAggregation(agg, copyReplaces)
	}
	// MatchAggregation appends both detectors' findings into the same
	// slice; split them back out by replace type so the output layer can
	// address copy and type replacements independently.
	copyReplaces, typeReplaces = splitByType(copyReplaces)

	explorerEntries := append([]NormalisedEntry(nil), entries...)
	sort.SliceStable(explorerEntries, func(i, j int) bool {
		return explorerEntries[i].Timestamp.Before(explorerEntries[j].Timestamp)
	})
	explorerReplaces := matcher.MatchExplorer(explorerEntries)

	return Result{
		Entries:          entries,
		Aggregations:     aggregations,
		CopyReplaces:     copyReplaces,
		TypeReplaces:     typeReplaces,
		ExplorerReplaces: explorerReplaces,
		Timing: Timing{
			Elapsed:          time.Since(start),
			RecordCount:      len(entries),
			AggregationCount: len(aggregations),
		},
	}, nil
}

func splitByType(mixed []Replacement) (copies, types []Replacement) {
	for _, r := range mixed {
		switch r.ReplaceType {
		case ReplaceTypeCopy:
			copies = append(copies, r)
		case ReplaceTypeType:
			types = append(types, r)
		}
	}
	return copies, types
}
