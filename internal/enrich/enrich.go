// Package enrich extracts structured case context from free-text case notes.
// Extraction is pattern-based and best-effort: every field carries its own
// confidence, and fields that cannot be found are simply left empty.
package enrich

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/casepilot/casepilot/internal/domain/casefile"
)

var (
	clientNameRe = regexp.MustCompile(`(?i:client|plaintiff)(?i:'s name)?[,:]?\s+(?:Mr\.|Ms\.|Mrs\.|Dr\.)?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})`)
	caseNumberRe = regexp.MustCompile(`(?i)(?:case|claim|file|matter)\s*(?:no\.?|number|#)\s*[:\s]\s*([A-Za-z0-9][A-Za-z0-9/-]+)`)

	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	writtenDateRe = regexp.MustCompile(`\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

	providerRe = regexp.MustCompile(`(?:Dr\.\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?|[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Hospital|Medical Center|Clinic|Orthopedics|Chiropractic|Imaging|Physical Therapy))`)
)

// caseTypeKeywords map phrases in the notes to a canonical case type. The
// first phrase found wins, scanning in declaration order.
var caseTypeKeywords = []struct {
	phrase   string
	caseType string
}{
	{"motor vehicle", "auto accident"},
	{"car accident", "auto accident"},
	{"auto accident", "auto accident"},
	{"rear-end", "auto accident"},
	{"slip and fall", "premises liability"},
	{"trip and fall", "premises liability"},
	{"premises liability", "premises liability"},
	{"medical malpractice", "medical malpractice"},
	{"workers comp", "workers compensation"},
	{"workers' comp", "workers compensation"},
	{"dog bite", "dog bite"},
	{"product liability", "product liability"},
	{"defective product", "product liability"},
}

// knownInsurers are carriers recognized by a simple substring scan.
var knownInsurers = []string{
	"State Farm", "GEICO", "Progressive", "Allstate", "Liberty Mutual",
	"Farmers", "USAA", "Nationwide", "Travelers", "American Family",
}

// Extract pulls structured context out of raw case text. It never fails;
// unmatched fields come back with empty values and zero confidence.
func Extract(text string) *casefile.Context {
	cc := &casefile.Context{}
	if strings.TrimSpace(text) == "" {
		return cc
	}

	if m := clientNameRe.FindStringSubmatch(text); m != nil {
		cc.ClientName = casefile.Field{Value: m[1], Confidence: 0.85}
	}
	if m := caseNumberRe.FindStringSubmatch(text); m != nil {
		cc.CaseNumber = casefile.Field{Value: m[1], Confidence: 0.9}
	}

	lower := strings.ToLower(text)
	for _, kw := range caseTypeKeywords {
		if strings.Contains(lower, kw.phrase) {
			cc.CaseType = casefile.Field{Value: kw.caseType, Confidence: 0.8}
			break
		}
	}

	for _, insurer := range knownInsurers {
		if strings.Contains(lower, strings.ToLower(insurer)) {
			cc.InsuranceCarrier = casefile.Field{Value: insurer, Confidence: 0.85}
			break
		}
	}

	if date, ok := extractDate(text); ok {
		cc.IncidentDate = casefile.Field{Value: date, Confidence: 0.75}
	}

	seen := make(map[string]struct{})
	for _, m := range providerRe.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cc.MedicalProviders = append(cc.MedicalProviders, casefile.Field{Value: m, Confidence: 0.7})
	}

	return cc
}

// extractDate finds the first date in the text and normalizes it to
// YYYY-MM-DD. ISO dates pass through; numeric dates are read as US
// month/day/year.
func extractDate(text string) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		return m[0], true
	}
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad(m[1]), pad(m[2])), true
	}
	if m := writtenDateRe.FindStringSubmatch(text); m != nil {
		t, err := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", m[1], m[2], m[3]))
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
	return "", false
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
