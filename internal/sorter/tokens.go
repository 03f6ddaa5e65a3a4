package sorter

import (
	"fmt"
	"strings"
	"time"
)

// DefaultStructure is the layout used when the job's structure template is
// empty: one directory per year, one per month.
const DefaultStructure = "YYYY/MM"

// structureToken is one recognized date token and how it renders.
type structureToken struct {
	text   string
	render func(time.Time) string
}

// structureTokens is the full token set, ordered longest-first so that
// multi-character tokens are matched before their shorter substrings
// (DD must never shadow DDDD). Matching is case-sensitive: MM is the
// 2-digit month, mm the 2-digit minute.
var structureTokens = []structureToken{
	{"MONTHNUM", month2},
	{"DAYNUM", day2},
	{"MINUTE", minute2},
	{"SECOND", second2},
	{"MONTH", monthName},
	{"YEAR", year4},
	{"YYYY", year4},
	{"MMMM", monthName},
	{"DDDD", weekdayName},
	{"HOUR", hour2},
	{"MMM", monthAbbr},
	{"DDD", weekdayAbbr},
	{"DAY", weekdayName},
	{"YY", year2},
	{"MM", month2},
	{"DD", day2},
	{"HH", hour2},
	{"mm", minute2},
	{"SS", second2},
	{"M", month1},
	{"D", day1},
	{"H", hour1},
	{"m", minute1},
	{"S", second1},
}

func year4(t time.Time) string       { return fmt.Sprintf("%04d", t.Year()) }
func year2(t time.Time) string       { return t.Format("06") }
func monthName(t time.Time) string   { return t.Month().String() }
func monthAbbr(t time.Time) string   { return t.Format("Jan") }
func month2(t time.Time) string      { return fmt.Sprintf("%02d", int(t.Month())) }
func month1(t time.Time) string      { return fmt.Sprintf("%d", int(t.Month())) }
func weekdayName(t time.Time) string { return t.Weekday().String() }
func weekdayAbbr(t time.Time) string { return t.Format("Mon") }
func day2(t time.Time) string        { return fmt.Sprintf("%02d", t.Day()) }
func day1(t time.Time) string        { return fmt.Sprintf("%d", t.Day()) }
func hour2(t time.Time) string       { return fmt.Sprintf("%02d", t.Hour()) }
func hour1(t time.Time) string       { return fmt.Sprintf("%d", t.Hour()) }
func minute2(t time.Time) string     { return fmt.Sprintf("%02d", t.Minute()) }
func minute1(t time.Time) string     { return fmt.Sprintf("%d", t.Minute()) }
func second2(t time.Time) string     { return fmt.Sprintf("%02d", t.Second()) }
func second1(t time.Time) string     { return fmt.Sprintf("%d", t.Second()) }

// RenderTemplate substitutes the recognized date tokens in template with
// values from t. At each position the longest boundary-valid token wins;
// a candidate is boundary-valid only when not immediately preceded or
// followed by an alphanumeric character in the template, so the MM inside
// a literal like SUMMARY passes through untouched. Unrecognized characters
// (including path separators) pass through unchanged.
//
// Substitution happens directly against t rather than via an intermediate
// time layout string: Go has no layout verb for an unpadded 24-hour hour,
// and literal template text would collide with layout verbs.
func RenderTemplate(template string, t time.Time) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		tok := matchTokenAt(template, i)
		if tok == nil {
			b.WriteByte(template[i])
			i++
			continue
		}
		b.WriteString(tok.render(t))
		i += len(tok.text)
	}

	return b.String()
}

// matchTokenAt returns the longest token matching at pos with valid word
// boundaries, or nil.
func matchTokenAt(s string, pos int) *structureToken {
	for i := range structureTokens {
		tok := &structureTokens[i]
		end := pos + len(tok.text)
		if end > len(s) || s[pos:end] != tok.text {
			continue
		}
		if pos > 0 && isAlphanumeric(s[pos-1]) {
			continue
		}
		if end < len(s) && isAlphanumeric(s[end]) {
			continue
		}
		return tok
	}
	return nil
}

func isAlphanumeric(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
