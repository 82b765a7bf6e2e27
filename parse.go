package treeconf

import (
	"bufio"
	"strings"
)

// Parse turns nested-section text into a RawNode tree rooted at an unnamed
// node. Section depth is the number of brackets around the header name:
//
//	[DXR]
//	workers = 4
//
//	[mozilla-central]
//	source_folder = /src
//
//	    [[buglink]]
//	    url = https://bugzilla.mozilla.org/
//
// Indentation is not significant. Lines starting with '#' or ';' are
// comments; other unrecognized lines are ignored.
func Parse(text string) (*RawNode, error) {
	root := NewRawNode("")
	chain := []*RawNode{root}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' {
			depth, name, ok := parseHeader(line)
			if !ok {
				continue
			}
			current := len(chain) - 1
			if depth > current+1 {
				return nil, &ParseError{
					Line:    lineNo,
					Text:    line,
					Message: "section nested too deeply for its position",
				}
			}
			chain = chain[:depth]
			chain = append(chain, chain[depth-1].Child(name))
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if len(chain) == 1 {
			return nil, &ParseError{
				Line:    lineNo,
				Text:    line,
				Message: "option appears before any section header",
			}
		}
		chain[len(chain)-1].set(key, unquote(strings.TrimSpace(value)), lineNo, "")
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNo, Message: err.Error()}
	}

	return root, nil
}

// parseHeader splits "[[name]]" into its depth and name. Headers whose
// opening and closing bracket runs differ in length are not headers.
func parseHeader(line string) (int, string, bool) {
	open := 0
	for open < len(line) && line[open] == '[' {
		open++
	}
	end := len(line)
	closing := 0
	for end > open && line[end-1] == ']' {
		end--
		closing++
	}
	if open != closing {
		return 0, "", false
	}
	name := strings.TrimSpace(line[open:end])
	if name == "" || strings.ContainsAny(name, "[]") {
		return 0, "", false
	}
	return open, name, true
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
