package gputest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// variable is a top level in/out/uniform declaration.
type variable struct {
	Qualifier string
	Type      string
	Name      string
	Location  int // -1 when no layout qualifier was given
}

type unit struct {
	Inputs   []variable
	Outputs  []variable
	Uniforms []variable
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	mainFunc     = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)\s*\{`)
	declaration  = regexp.MustCompile(`^\s*` +
		`(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?` +
		`(in|out|uniform)\s+` +
		`(?:(?:flat|smooth|noperspective|highp|mediump|lowp)\s+)*` +
		`(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*$`)
)

// parseGLSL checks source for gross syntax errors and collects its
// interface variables. The returned error text is formatted like a driver
// info log.
func parseGLSL(source string) (unit, error) {
	src := blockComment.ReplaceAllString(source, "")
	src = lineComment.ReplaceAllString(src, "")

	if err := checkBrackets(src); err != nil {
		return unit{}, err
	}
	if !mainFunc.MatchString(src) {
		return unit{}, fmt.Errorf("ERROR: 0:0: 'main' : function not defined")
	}

	var u unit
	statements := strings.FieldsFunc(src, func(r rune) bool {
		return r == ';' || r == '{' || r == '}'
	})
	for _, statement := range statements {
		m := declaration.FindStringSubmatch(stripDirectives(statement))
		if m == nil {
			continue
		}
		v := variable{Qualifier: m[2], Type: m[3], Name: m[4], Location: -1}
		if m[1] != "" {
			v.Location, _ = strconv.Atoi(m[1])
		}
		switch v.Qualifier {
		case "in":
			u.Inputs = append(u.Inputs, v)
		case "out":
			u.Outputs = append(u.Outputs, v)
		case "uniform":
			u.Uniforms = append(u.Uniforms, v)
		}
	}
	return u, nil
}

func checkBrackets(src string) error {
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	var stack []rune
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Errorf("ERROR: 0:%d: '%c' : syntax error", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("ERROR: 0:%d: '%c' : unexpected end of file", line, stack[len(stack)-1])
	}
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("ERROR: 0:1: '' : syntax error: empty source")
	}
	return nil
}

// stripDirectives drops preprocessor lines such as #version and #define
// that precede a declaration within the same statement.
func stripDirectives(statement string) string {
	lines := strings.Split(statement, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
