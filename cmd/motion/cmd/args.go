package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parsedArgs holds positional arguments and flag values.
type parsedArgs struct {
	positional []string
	values     map[string]string
}

// parseArgs splits args into positionals and --flag values. Every flag takes
// a value, given as "--flag value" or "--flag=value". aliases maps short
// forms such as "-o" to their long names.
func parseArgs(args []string, known []string, aliases map[string]string) (parsedArgs, error) {
	parsed := parsedArgs{values: make(map[string]string)}
	isKnown := func(name string) bool {
		for _, k := range known {
			if k == name {
				return true
			}
		}
		return false
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if long, ok := aliases[arg]; ok {
			arg = long
		}
		if !strings.HasPrefix(arg, "--") {
			parsed.positional = append(parsed.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !isKnown(name) {
			return parsed, fmt.Errorf("unknown flag --%s", name)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return parsed, fmt.Errorf("--%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		parsed.values[name] = value
	}
	return parsed, nil
}

func (p parsedArgs) duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := p.values[name]
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("--%s must be a positive duration such as 300ms (got %q)", name, v)
	}
	return d, nil
}

func (p parsedArgs) count(name string, def int) (int, error) {
	v, ok := p.values[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("--%s must be a positive integer (got %q)", name, v)
	}
	return n, nil
}
