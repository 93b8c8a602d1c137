package fuzzy

import "strings"

// LevenshteinDistance calculates the edit distance between two strings
// after Turkish-aware normalization.
func LevenshteinDistance(s1, s2 string) int {
	s1 = Normalize(s1)
	s2 = Normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}

	return d[m][n]
}

// Match reports whether query fuzzy-matches text within the given edit
// distance threshold. Substring and prefix hits count as matches so a
// console operator can type a fragment of a company name.
func Match(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)

	if query == "" {
		return true
	}
	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}

	return false
}

// MatchFields matches the query against any of the given fields using a
// threshold scaled to the query length. Short queries tolerate fewer
// typos than long ones.
func MatchFields(query string, fields ...string) bool {
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	for _, field := range fields {
		if field == "" {
			continue
		}
		if Match(query, field, threshold) {
			return true
		}
	}

	return false
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// Normalize lowercases the string, collapses whitespace and folds
// Turkish letters to their ASCII equivalents so that "Şirket" matches
// "sirket" and "İstanbul" matches "istanbul".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'ç':
			b.WriteRune('c')
		case 'ğ':
			b.WriteRune('g')
		case 'ı':
			b.WriteRune('i')
		case '̇':
			// combining dot left over from lowercasing dotted capital I
		case 'ö':
			b.WriteRune('o')
		case 'ş':
			b.WriteRune('s')
		case 'ü':
			b.WriteRune('u')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
