// Package titlematch picks the search hit that best matches a typed title.
package titlematch

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanSuffix matches II-IX after a space. Lone "I" and "X" are left alone
// ("I, Robot", "American History X").
var romanSuffix = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanValue = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

// trailingYear matches "Heat 1995" and "Heat (1995)".
var trailingYear = regexp.MustCompile(`\s*\(?((?:19|20)\d{2})\)?\s*$`)

var punctuation = strings.NewReplacer(
	"&", " and ",
	"-", " ",
	"'", "",
	"’", "",
	".", " ",
)

var accents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean reduces a title to a comparable form: lower case, no accents or
// punctuation, Arabic sequel numbers, and no leading article on the title
// or its subtitle.
func Clean(title string) string {
	s := strings.ToLower(title)
	s = romanSuffix.ReplaceAllStringFunc(s, func(m string) string {
		return " " + romanValue[strings.TrimSpace(m)]
	})
	if stripped, _, err := transform.String(accents, s); err == nil {
		s = stripped
	}
	s = punctuation.Replace(s)

	parts := strings.Split(s, ":")
	for i, p := range parts {
		parts[i] = dropArticle(p)
	}
	s = strings.Join(parts, " ")

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func dropArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, article := range []string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(s, article); ok {
			return rest
		}
	}
	return s
}

// SplitYear separates a trailing release year from a query.
// It returns year 0 when the query has none, when the year is all there is,
// or when the number lies in the future ("Blade Runner 2049").
func SplitYear(query string) (string, int) {
	m := trailingYear.FindStringSubmatchIndex(query)
	if m == nil {
		return query, 0
	}
	title := strings.TrimSpace(query[:m[0]])
	year, _ := strconv.Atoi(query[m[2]:m[3]])
	if title == "" || year > time.Now().Year()+1 {
		return query, 0
	}
	return title, year
}

// startYear reads the first year out of OMDb's Year field, which is "1994"
// for films and "2008–2013" or "2019–" for series.
func startYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return y
}
