package console

import (
	"fmt"
	"strconv"
	"strings"
)

// splitArgs splits a line on whitespace; double quotes group words
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		inArg   bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case !quoted && (r == ' ' || r == '\t'):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", ErrUsage)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}

// parseAssignments reads key=value arguments
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrUsage, arg)
		}
		out[strings.ToLower(key)] = value
	}
	return out, nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrUsage, name, value)
	}
	return n, nil
}

func parseNonNegative(name, value string) (int, error) {
	n, err := parseInt(name, value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrUsage, name)
	}
	return n, nil
}
