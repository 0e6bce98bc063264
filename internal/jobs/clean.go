package jobs

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	remoteRe = regexp.MustCompile(`(?i)\b(Remote|Hybrid|Télétravail|À distance)\b`)
	salaryRe = regexp.MustCompile(`\d[\d\s,.]*[€$£k]*\s*[-–]\s*\d[\d\s,.]*[€$£k]*|\d[\d\s,.]*[€$£k]+`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

var contractMap = []struct {
	term     string
	contract string
}{
	{"full", "Full-time"},
	{"temps plein", "Full-time"},
	{"cdi", "Full-time"},
	{"part", "Part-time"},
	{"temps partiel", "Part-time"},
	{"contract", "Contract"},
	{"cdd", "Contract"},
	{"intern", "Internship"},
	{"stage", "Internship"},
	{"altern", "Apprenticeship"},
	{"apprenti", "Apprenticeship"},
}

// Clean deduplicates listings by URL (first one wins) and normalizes
// every text field.
func Clean(listings []types.JobListing) []types.JobListing {
	seen := make(map[string]bool)
	out := make([]types.JobListing, 0, len(listings))
	for _, l := range listings {
		if l.URL != "" {
			if seen[l.URL] {
				continue
			}
			seen[l.URL] = true
		}
		l.Title = CleanText(l.Title)
		l.Company = CleanText(l.Company)
		l.Description = CleanText(StripHTML(l.Description))
		l.Location = CleanText(remoteRe.ReplaceAllString(l.Location, ""))
		l.ContractType = NormalizeContract(l.ContractType)
		if m := salaryRe.FindString(l.Salary); m != "" {
			l.Salary = strings.TrimSpace(m)
		} else {
			l.Salary = CleanText(l.Salary)
		}
		out = append(out, l)
	}
	return out
}

// CleanText collapses whitespace and drops non-printable characters.
func CleanText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(b.String(), " "))
}

// NormalizeContract maps the many scraped contract labels onto a small
// canonical set; unknown labels are just capitalized.
func NormalizeContract(s string) string {
	lower := strings.ToLower(s)
	for _, m := range contractMap {
		if strings.Contains(lower, m.term) {
			return m.contract
		}
	}
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// StripHTML extracts the readable text from an HTML job description.
func StripHTML(html string) string {
	if !strings.Contains(html, "<") {
		return html
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return tagRe.ReplaceAllString(html, " ")
	}
	doc.Find("script, style, iframe, noscript").Remove()

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}
	return strings.TrimSpace(doc.Text())
}
