package seed

import (
	"regexp"
	"strings"

	"github.com/dukerupert/sabzi/internal/model"
)

// Rule names reported in Record.Rule.
const (
	RuleThreePart      = "three-part"
	RuleFractionUnit   = "fraction-unit"
	RuleCountUnit      = "count-unit"
	RuleKattaPrice     = "katta-price"
	RuleBareCount      = "bare-count"
	RuleCountDashPrice = "count-dash-price"
	RuleBareUnit       = "bare-unit"
	RuleDashSplit      = "dash-split"
	RuleNone           = "none"
)

const statusSuffix = "-no"

// Record is one parsed seed line.
type Record struct {
	Name     string           `json:"name"`
	Quantity string           `json:"quantity"`
	Note     *string          `json:"note,omitempty"`
	Status   model.ItemStatus `json:"status"`
	Rule     string           `json:"rule,omitempty"`
}

type split struct {
	name     string
	quantity string
	note     *string
}

type rule struct {
	name  string
	match func(s string) (split, bool)
}

var (
	threePartPattern = regexp.MustCompile(`^(.+?)\s*-\s*(.+?)\s+-\s*(\d.*)$`)
	unitWordPattern  = regexp.MustCompile(`(?i)kg|rs|packet|katta`)
)

// rules are tried in order and the first match wins. The fraction and compound
// suffixes must stay ahead of bare-count or they get split in the wrong place.
var rules = []rule{
	{name: RuleThreePart, match: threePart},
	suffixRule(RuleFractionUnit, `(?i)-(\d+/\d+\s*kg)$`),
	suffixRule(RuleCountUnit, `(?i)-(\d+\s*(?:kg|packet|rs|katta))$`),
	suffixRule(RuleKattaPrice, `(?i)-(\d+\s*katta/\d+\s*rs)$`),
	suffixRule(RuleBareCount, `-(\d+)$`),
	suffixRule(RuleCountDashPrice, `(?i)-(\d+-\d*\s*rs)$`),
	suffixRule(RuleBareUnit, `(?i)-(\s*kg)$`),
	{name: RuleDashSplit, match: dashSplit},
}

// suffixRule builds a rule whose first capture group is the quantity and whose
// text before the match is the name.
func suffixRule(name, expr string) rule {
	re := regexp.MustCompile(expr)
	return rule{
		name: name,
		match: func(s string) (split, bool) {
			m := re.FindStringSubmatchIndex(s)
			if m == nil {
				return split{}, false
			}
			return split{
				name:     strings.TrimSpace(s[:m[0]]),
				quantity: strings.TrimSpace(s[m[2]:m[3]]),
			}, true
		},
	}
}

func threePart(s string) (split, bool) {
	m := threePartPattern.FindStringSubmatch(s)
	if m == nil {
		return split{}, false
	}
	note := strings.TrimSpace(m[2])
	if note == "" {
		return split{}, false
	}
	return split{
		name:     strings.TrimSpace(m[1]),
		quantity: strings.TrimSpace(m[3]),
		note:     &note,
	}, true
}

// dashSplit treats the text after the last dash as a quantity when it looks
// like one: it has a digit or a unit word.
func dashSplit(s string) (split, bool) {
	i := strings.LastIndex(s, "-")
	if i <= 0 {
		return split{}, false
	}
	tail := strings.TrimSpace(s[i+1:])
	if tail == "" {
		return split{}, false
	}
	if !strings.ContainsAny(tail, "0123456789") && !unitWordPattern.MatchString(tail) {
		return split{}, false
	}
	return split{name: strings.TrimSpace(s[:i]), quantity: tail}, true
}

// hasStatusSuffix reports whether s ends in "-no", ignoring case.
func hasStatusSuffix(s string) bool {
	n := len(statusSuffix)
	return len(s) >= n && strings.EqualFold(s[len(s)-n:], statusSuffix)
}

// ParseRecord converts one raw seed line into a Record. It never fails: input
// that matches no rule comes back whole as the name with an empty quantity.
func ParseRecord(line string) Record {
	trimmed := strings.TrimSpace(line)
	rec := Record{Status: model.StatusToBuy, Rule: RuleNone}

	work := trimmed
	if hasStatusSuffix(work) {
		rec.Status = model.StatusNotNeeded
		work = strings.TrimSpace(work[:len(work)-len(statusSuffix)])
	}

	rec.Name = work
	for _, r := range rules {
		if sp, ok := r.match(work); ok {
			rec.Name = sp.name
			rec.Quantity = sp.quantity
			rec.Note = sp.note
			rec.Rule = r.name
			break
		}
	}

	rec.Name = strings.TrimSpace(strings.TrimRight(rec.Name, " \t-"))
	if rec.Name == "" {
		rec.Name = trimmed
	}
	return rec
}

// ParseLines parses every non-blank line of text, in order.
func ParseLines(text string) []Record {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseRecord(line))
	}
	return records
}
