package sqlite

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	crerr "github.com/cockroachdb/errors"
)

// LegacyLocation is the wall clock the scraper stored match dates in.
var LegacyLocation = time.FixedZone("ART", -3*60*60)

var kickoffLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseKickoff(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range kickoffLayouts {
		if t, err := time.ParseInLocation(layout, v, LegacyLocation); err == nil {
			return t, nil
		}
	}
	return time.Time{}, crerr.Newf("unrecognized match date %q", v)
}

// parseScore reads "2 - 1". Anything else means no result yet.
func parseScore(v string) (home, away *int, ok bool) {
	left, right, found := strings.Cut(v, "-")
	if !found {
		return nil, nil, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return nil, nil, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return nil, nil, false
	}
	return &h, &a, true
}

// parseMinute keeps the regular-time part of "45+2".
func parseMinute(v string) int {
	return leadingInt(strings.TrimSpace(v))
}

// parseGameweek reads the first number in labels like "Fecha 7".
func parseGameweek(v string) int {
	i := strings.IndexFunc(v, unicode.IsDigit)
	if i < 0 {
		return 0
	}
	return leadingInt(v[i:])
}

func leadingInt(v string) int {
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(v[:end])
	return n
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// slug derives a stable id from a display name: "Yael Falcón Pérez" becomes
// "yael-falcon-perez".
func slug(name string) string {
	folded := strings.ToLower(accentFolder.Replace(strings.TrimSpace(name)))

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func shortName(name string) string {
	letters := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(accentFolder.Replace(name)) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
		if len(letters) == 3 {
			break
		}
	}
	return string(letters)
}
