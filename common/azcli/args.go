package azcli

import "sort"

// Args builds an az argument list.
type Args []string

// Cmd starts an argument list with the command words, e.g. Cmd("load", "test-run", "show").
func Cmd(words ...string) Args {
	return append(Args{}, words...)
}

// Flag appends --name value.
func (a Args) Flag(name, value string) Args {
	return append(a, "--"+name, value)
}

// FlagIf appends --name value when value is not empty.
func (a Args) FlagIf(name, value string) Args {
	if value == "" {
		return a
	}
	return a.Flag(name, value)
}

// Switch appends --name when on is true.
func (a Args) Switch(name string, on bool) Args {
	if !on {
		return a
	}
	return append(a, "--"+name)
}

// Pairs appends --name k1=v1 k2=v2 with keys in sorted order,
// nothing is appended for an empty map.
func (a Args) Pairs(name string, kv map[string]string) Args {
	if len(kv) == 0 {
		return a
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	a = append(a, "--"+name)
	for _, k := range keys {
		a = append(a, k+"="+kv[k])
	}
	return a
}

// Strings returns the plain slice, for use with Executor.Run(ctx, args.Strings()...).
func (a Args) Strings() []string {
	return []string(a)
}
