// SPDX-License-Identifier: MPL-2.0

package helper

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

type (
	// Chain is an all-or-nothing ordered set of command names that
	// together perform one lint/format task. A chain is the unit of
	// atomic selection: it only runs after every command in it has been
	// independently confirmed available.
	Chain struct {
		Commands []string
	}
)

// ParseChains turns configured chain specifiers into Chains. Each
// specifier is a whitespace-separated list of command names; blank
// specifiers are dropped.
func ParseChains(specs []string) []Chain {
	chains := make([]Chain, 0, len(specs))
	for _, spec := range specs {
		names := strings.Fields(spec)
		if len(names) == 0 {
			continue
		}
		chains = append(chains, Chain{Commands: names})
	}
	return chains
}

// String renders the chain as its specifier.
func (c Chain) String() string { return strings.Join(c.Commands, " ") }

// SplitOptions word-splits an options string using POSIX shell rules, so
// quoted arguments survive ("-m 'two words'" stays two fields, not three).
func SplitOptions(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fields, err := shell.Fields(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("malformed options %q: %w", raw, err)
	}
	return fields, nil
}
