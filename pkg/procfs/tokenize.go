package procfs

import "strings"

// Tokenization never fails. Delimiter rules only slice raw text into
// lines and tokens; whether the resulting shape makes a valid record is
// the parser's call.

// splitLines breaks raw source text into lines, skipping blank ones.
func splitLines(raw []byte) []string {
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// tokenizeFields applies the whitespace-run rule: each line becomes its
// space/tab separated tokens. Used for /proc/stat, /proc/loadavg,
// /proc/uptime and /proc/<pid>/stat.
func tokenizeFields(raw []byte) [][]string {
	lines := splitLines(raw)
	out := make([][]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.Fields(line))
	}
	return out
}

// keyValues is one line of a colon-key source: the key before ':' and
// the whitespace-separated tokens after it (value first, then an
// optional unit suffix such as "kB").
type keyValues struct {
	key    string
	values []string
}

// tokenizeColon applies the colon-key rule. Lines without a ':' are
// dropped. Used for /proc/meminfo and /proc/<pid>/status.
func tokenizeColon(raw []byte) []keyValues {
	var out []keyValues
	for _, line := range splitLines(raw) {
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out = append(out, keyValues{
			key:    strings.TrimSpace(key),
			values: strings.Fields(rest),
		})
	}
	return out
}

// tableRow is one row of a header+table source: the row key before ':'
// plus its positional value tokens.
type tableRow struct {
	name   string
	fields []string
}

// tokenizeTable applies the header+table rule (/proc/net/dev shape):
// the first headerLines lines are returned verbatim for the parser's
// column mapping, the remainder become keyed rows. Rows without a ':'
// key separator are skipped.
func tokenizeTable(raw []byte, headerLines int) (headers []string, rows []tableRow) {
	lines := splitLines(raw)
	if len(lines) < headerLines {
		return lines, nil
	}
	headers = lines[:headerLines]
	for _, line := range lines[headerLines:] {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		rows = append(rows, tableRow{
			name:   strings.TrimSpace(name),
			fields: strings.Fields(rest),
		})
	}
	return headers, rows
}
