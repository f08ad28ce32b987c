package journal

// Replacement types recognised by PatternMatcher.
const (
	ReplaceTypeCopy     = "Copy"
	ReplaceTypeType     = "Type"
	ReplaceTypeExplorer = "Explorer"
)

// Replacement is one detected replace-pattern occurrence, ready for the
// output layer. FileID is the zero FileIdKey for an Explorer match, which
// spans several files and carries no single id.
type Replacement struct {
	Name        string
	Directory   string
	FileID      FileIdKey
	HasFileID   bool
	ReplaceType string
	Events      []FileEvent
}

// reasonWindow is one position of a sliding-window pattern: the window
// matches at that position if the event's ReasonSet has every flag in
// either required alternative.
type reasonWindow struct {
	a []ReasonFlag
	b []ReasonFlag
}

func (w reasonWindow) matches(s ReasonSet) bool {
	return s.HasAll(w.a...) || s.HasAll(w.b...)
}

// copyReplacePattern is the 5-position "copy replace" signature: a file
// truncated, re-extended, overwritten, and its attributes and security
// touched in the course of being swapped out from under its original
// handle.
var copyReplacePattern = [5]reasonWindow{
	{a: []ReasonFlag{ReasonDataTruncation, ReasonSecurityChange}, b: []ReasonFlag{ReasonDataTruncation}},
	{a: []ReasonFlag{ReasonDataExtend, ReasonDataTruncation, ReasonSecurityChange}, b: []ReasonFlag{ReasonDataExtend, ReasonDataTruncation}},
	{a: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation, ReasonSecurityChange}, b: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation}},
	{a: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation, ReasonSecurityChange, ReasonBasicInfoChange}, b: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation, ReasonBasicInfoChange}},
	{a: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation, ReasonSecurityChange, ReasonBasicInfoChange, ReasonClose}, b: []ReasonFlag{ReasonDataOverwrite, ReasonDataExtend, ReasonDataTruncation, ReasonBasicInfoChange, ReasonClose}},
}

// typeReplacePattern is the 2-position signature left by `type` or `echo`
// output redirected over an existing file, replacing its contents in place
// (truncate and extend, then close).
var typeReplacePattern = [2]reasonWindow{
	{a: []ReasonFlag{ReasonDataExtend, ReasonDataTruncation}, b: []ReasonFlag{ReasonDataTruncation}},
	{a: []ReasonFlag{ReasonDataExtend, ReasonDataTruncation, ReasonClose}, b: []ReasonFlag{ReasonDataExtend, ReasonDataTruncation}},
}

// explorerReplacePattern is the 4-position signature left by Explorer's
// delete-then-rename-twice replace: delete the target, rename the
// replacement off its temp name, then rename it onto the target's name.
var explorerReplacePattern = [4]reasonWindow{
	{a: []ReasonFlag{ReasonFileDelete, ReasonClose}, b: []ReasonFlag{ReasonFileDelete, ReasonClose}},
	{a: []ReasonFlag{ReasonRenameOldName}, b: []ReasonFlag{ReasonRenameOldName}},
	{a: []ReasonFlag{ReasonRenameNewName}, b: []ReasonFlag{ReasonRenameNewName}},
	{a: []ReasonFlag{ReasonRenameNewName, ReasonClose}, b: []ReasonFlag{ReasonRenameNewName, ReasonClose}},
}

// PatternMatcher runs the three replace-pattern detectors. It holds no
// state between calls other than which detectors are enabled.
type PatternMatcher struct {
	copy     bool
	typ      bool
	explorer bool
}

// DetectorSet names which of the three detectors PatternMatcher should run.
type DetectorSet struct {
	Copy     bool
	Type     bool
	Explorer bool
}

// NewPatternMatcher builds a PatternMatcher running the given detectors.
func NewPatternMatcher(d DetectorSet) *PatternMatcher {
	return &PatternMatcher{copy: d.Copy, typ: d.Type, explorer: d.Explorer}
}

// MatchAggregation runs the per-file detectors (copy, type) against one
// file's event timeline and appends any matches to out.
func (m *PatternMatcher) MatchAggregation(agg Aggregation, out []Replacement) []Replacement {
	if m.copy && slidingWindowMatches(agg.Events, copyReplacePattern[:]) {
		out = append(out, Replacement{
			Name: agg.Name, Directory: agg.Directory,
			FileID: agg.FileID, HasFileID: true,
			ReplaceType: ReplaceTypeCopy, Events: agg.Events,
		})
	}
	if m.typ && slidingWindowMatches(agg.Events, typeReplacePattern[:]) {
		out = append(out, Replacement{
			Name: agg.Name, Directory: agg.Directory,
			FileID: agg.FileID, HasFileID: true,
			ReplaceType: ReplaceTypeType, Events: agg.Events,
		})
	}
	return out
}

// slidingWindowMatches reports whether pattern matches the events slice at
// any starting offset.
func slidingWindowMatches(events []FileEvent, pattern []reasonWindow) bool {
	n := len(pattern)
	if len(events) < n {
		return false
	}
	for start := 0; start+n <= len(events); start++ {
		if windowMatchesAt(events[start:start+n], pattern) {
			return true
		}
	}
	return false
}

func windowMatchesAt(window []FileEvent, pattern []reasonWindow) bool {
	for i, p := range pattern {
		if !p.matches(window[i].ReasonSet) {
			return false
		}
	}
	return true
}

// MatchExplorer scans every normalised entry globally, in ascending
// timestamp order, for the 4-entry Explorer replace signature. Unlike the
// per-file detectors, this scan is global across all files and keeps a
// single monotonic cursor: a match consumes all 4 entries and the scan
// resumes after them, so matches never overlap.
func (m *PatternMatcher) MatchExplorer(entriesAscending []NormalisedEntry) []Replacement {
	if !m.explorer || len(entriesAscending) < 4 {
		return nil
	}
	var out []Replacement
	i := 0
	for i+4 <= len(entriesAscending) {
		window := entriesAscending[i : i+4]
		if explorerWindowMatches(window) {
			out = append(out, Replacement{
				Name:        window[0].Name,
				Directory:   window[3].Directory,
				ReplaceType: ReplaceTypeExplorer,
				Events: []FileEvent{
					entryToEvent(window[0]),
					entryToEvent(window[1]),
					entryToEvent(window[2]),
					entryToEvent(window[3]),
				},
			})
			i += 4
			continue
		}
		i++
	}
	return out
}

func explorerWindowMatches(window []NormalisedEntry) bool {
	name := window[0].Name
	for _, e := range window {
		if e.Name != name {
			return false
		}
	}
	for i, p := range explorerReplacePattern {
		if !p.matches(window[i].ReasonSet) {
			return false
		}
	}
	return true
}

func entryToEvent(e NormalisedEntry) FileEvent {
	return FileEvent{
		Timestamp: e.Timestamp,
		Reasons:   e.Reasons,
		ReasonSet: e.ReasonSet,
		Name:      e.Name,
		Directory: e.Directory,
	}
}
