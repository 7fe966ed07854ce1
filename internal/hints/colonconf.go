package hints

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// parseColonConf reads a colonconf document: a simple key/value format
// whose variable names may contain anything, colons included.
//
//	simplevar = 4
//	my:var:name = line1
//	    line2
//
//	# full-line comment
//	multi:line =
//	    first
//	    second
//
// Continuation lines carry at least one leading whitespace character.
// Multi-line values join with newlines. Keys are returned in declaration
// order alongside the value map.
func parseColonConf(r io.Reader) ([]string, map[string]string, error) {
	var order []string
	parts := make(map[string][]string)

	cur := ""
	haveCur := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !unicode.IsSpace(rune(line[0])) {
			if strings.HasPrefix(trimmed, "#") {
				continue
			}
			name, rest, _ := strings.Cut(line, "=")
			cur = strings.TrimSpace(name)
			haveCur = true
			if _, seen := parts[cur]; !seen {
				order = append(order, cur)
			}
			parts[cur] = []string{strings.TrimSpace(rest)}
			continue
		}

		if haveCur {
			parts[cur] = append(parts[cur], trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading colonconf: %w", err)
	}

	values := make(map[string]string, len(parts))
	for key, lines := range parts {
		values[key] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return order, values, nil
}
