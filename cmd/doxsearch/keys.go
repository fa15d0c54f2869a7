package main

import (
	"fmt"
	"strings"
)

// Run executes the keys command.
func (c *KeysCmd) Run(deps *Dependencies) error {
	store, err := loadStore(deps, c.Name)
	if err != nil {
		return reportError(deps, err)
	}

	prefix := strings.ToLower(c.Prefix)
	for _, key := range store.Keys() {
		if strings.HasPrefix(key, prefix) {
			fmt.Fprintln(deps.Stdout, key)
		}
	}
	return nil
}
