// Package evaluation holds the client-side core of the quality-management
// forms: the category template registry, the sub-category comment codec,
// the manager-evaluation lifecycle, and task draft validation.
//
// None of this talks to the network; the cli layer feeds results into the
// api package.
package evaluation

import "strings"

// Sub-category answers are embedded in a category's single free-text
// comment field as lines of the form "<SubCategoryName>: <text>". Lines not
// matching any known sub-category are general comments.
//
// Matching is exact prefix string comparison. Sub-category names routinely
// contain characters that are regex metacharacters, so they must never be
// compiled into patterns.
const subSeparator = ": "

// DecodeComments decomposes a comment blob into per-sub-category values
// plus the residual general text. Every name in subNames gets an entry;
// absence yields "". When several lines carry the same prefix the first
// one wins, and the duplicates are dropped rather than surfaced as general
// comments.
func DecodeComments(blob string, subNames []string) (map[string]string, string) {
	values := make(map[string]string, len(subNames))
	for _, name := range subNames {
		values[name] = ""
	}

	var general []string
	for _, line := range splitLines(blob) {
		name, ok := matchSub(line, subNames)
		if !ok {
			general = append(general, line)
			continue
		}
		if values[name] == "" {
			values[name] = strings.TrimPrefix(line, name+subSeparator)
		}
	}

	return values, strings.Join(general, "\n")
}

// SetSubComment returns blob with the given sub-category's line replaced.
// Every existing line carrying the prefix is removed; the new line is
// written only when value is non-empty. All other lines are preserved.
func SetSubComment(blob, name, value string) string {
	var out []string
	if value != "" {
		out = append(out, name+subSeparator+value)
	}
	for _, line := range splitLines(blob) {
		if strings.HasPrefix(line, name+subSeparator) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// SetGeneralComment returns blob with its general text replaced, keeping
// every line that belongs to a known sub-category.
func SetGeneralComment(blob, text string, subNames []string) string {
	var out []string
	for _, line := range splitLines(blob) {
		if _, ok := matchSub(line, subNames); ok {
			out = append(out, line)
		}
	}
	if text != "" {
		out = append(out, splitLines(text)...)
	}
	return strings.Join(out, "\n")
}

func splitLines(blob string) []string {
	if blob == "" {
		return nil
	}
	return strings.Split(blob, "\n")
}

// matchSub returns the first sub-category whose prefix opens the line.
func matchSub(line string, subNames []string) (string, bool) {
	for _, name := range subNames {
		if strings.HasPrefix(line, name+subSeparator) {
			return name, true
		}
	}
	return "", false
}
