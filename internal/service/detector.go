// Package service contains the triage pipeline: task detection, workflow
// construction, concurrent worker execution, and result aggregation.
package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/casepilot/casepilot/internal/domain/triage"
)

// Detector confidence policy: a crude, deterministic, monotonic function of
// match density. The constants are tunable; the function must stay
// non-decreasing in the match count and bounded in [0,1].
const (
	detectorBaseConfidence = 0.2
	detectorPerMatch       = 0.12
)

// categoryPatterns maps each category to its detection pattern set. Each
// pattern counts at most once toward the category's match count. Patterns are
// matched case-insensitively against the raw text.
var categoryPatterns = map[triage.Category][]string{
	triage.CategoryRecords: {
		`missing.*record`, `incomplete.*record`, `duplicate.*record`,
		`need.*record`, `awaiting.*record`, `not.*received`,
		`outstanding.*record`, `pending.*record`,
	},
	triage.CategoryCommunication: {
		`client.*anxious`, `client.*worried`, `client.*called`,
		`client.*concerned`, `reassure.*client`, `update.*client`,
		`client.*follow.?up`, `client.*needs`,
	},
	triage.CategoryResearch: {
		`legal.*issue`, `precedent`, `case.*law`, `statute`,
		`legal.*research`, `legal.*question`, `jurisdiction`,
		`verdict`, `ruling`, `legal.*basis`,
	},
	triage.CategoryScheduling: {
		`schedule.*call`, `schedule.*meeting`, `contact.*witness`,
		`call.*needed`, `follow.?up.*call`, `appointment`,
		`deposition`, `interview.*witness`, `phone.*number`,
	},
	triage.CategoryEvidence: {
		`evidence`, `exhibit`, `document.*inventory`, `photo`,
		`medical.*bill`, `police.*report`, `witness.*statement`,
		`classify.*document`, `organize.*evidence`,
	},
}

// Detector scans case text against the fixed category catalog.
// The zero value is not usable; create one with NewDetector.
type Detector struct {
	patterns map[triage.Category][]*regexp.Regexp
}

// NewDetector compiles the category pattern catalog.
func NewDetector() *Detector {
	d := &Detector{patterns: make(map[triage.Category][]*regexp.Regexp, len(categoryPatterns))}
	for cat, pats := range categoryPatterns {
		compiled := make([]*regexp.Regexp, 0, len(pats))
		for _, p := range pats {
			compiled = append(compiled, regexp.MustCompile(p))
		}
		d.patterns[cat] = compiled
	}
	return d
}

// Detect returns the tasks implied by the case text, sorted by priority
// descending, then match count descending; ties keep category declaration
// order. Detect is total and deterministic: it never fails, and empty text
// yields an empty list. A phrase may count toward several categories at once.
func (d *Detector) Detect(text string) []triage.DetectedTask {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var tasks []triage.DetectedTask
	for _, cat := range triage.Categories() {
		matches := 0
		for _, re := range d.patterns[cat] {
			if re.MatchString(lower) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		tasks = append(tasks, triage.DetectedTask{
			Category:   cat,
			Priority:   cat.Priority(),
			MatchCount: matches,
			Confidence: matchConfidence(matches),
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority.Rank() != tasks[j].Priority.Rank() {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		}
		return tasks[i].MatchCount > tasks[j].MatchCount
	})

	return tasks
}

// matchConfidence maps a match count to a detection confidence in [0,1].
func matchConfidence(matches int) float64 {
	c := detectorBaseConfidence + detectorPerMatch*float64(matches)
	if c > 1 {
		return 1
	}
	return c
}
