package command

import "strings"

// Args are the parsed --flag=value pairs of a command line. Flags
// without a value are stored as "true".
type Args map[string]string

// Split separates the command word from its argument string. The
// leading "!" must already be stripped.
func Split(line string) (cmd string, rest string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ = strings.Cut(line, " ")
	return cmd, strings.TrimSpace(rest)
}

// ParseArgs reads flag-style arguments: `--e=a,b --help`.
// Tokens that do not start with "--" are ignored.
func ParseArgs(rest string) Args {
	args := make(Args)
	for _, tok := range strings.Fields(rest) {
		if !strings.HasPrefix(tok, "--") {
			continue
		}
		key, value, found := strings.Cut(tok[2:], "=")
		if key == "" {
			continue
		}
		if !found {
			value = "true"
		}
		args[key] = value
	}
	return args
}

// List splits a comma-separated flag value, dropping empty entries.
func (a Args) List(key string) []string {
	raw, ok := a[key]
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Bool reports whether a flag is present and not explicitly "false".
func (a Args) Bool(key string) bool {
	v, ok := a[key]
	return ok && v != "false"
}
