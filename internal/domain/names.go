package domain

import (
	"path"
	"strconv"
	"strings"
)

// UniqueName returns name, or name with a -N suffix before the extension
// when it was already handed out. Every returned name is recorded in seen,
// so a later literal "a-1.png" cannot collide with a generated one.
func UniqueName(name string, seen map[string]int) string {
	n := seen[name]
	if n == 0 {
		seen[name] = 1
		return name
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := n; ; i++ {
		candidate := stem + "-" + strconv.Itoa(i) + ext
		if seen[candidate] == 0 {
			seen[name] = i + 1
			seen[candidate] = 1
			return candidate
		}
	}
}
