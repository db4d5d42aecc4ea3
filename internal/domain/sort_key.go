package domain

import (
	"fmt"
	"strings"
)

type SortKey int

const (
	SortByTTK SortKey = iota
	SortByDPS
	SortByBullets
	SortByName
)

func (k SortKey) String() string {
	switch k {
	case SortByTTK:
		return "ttk"
	case SortByDPS:
		return "dps"
	case SortByBullets:
		return "bullets"
	case SortByName:
		return "name"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey maps the sort_by config value to a key. Empty means ttk.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ttk":
		return SortByTTK, nil
	case "dps":
		return SortByDPS, nil
	case "bullets", "bullets_fired":
		return SortByBullets, nil
	case "name", "weapon":
		return SortByName, nil
	default:
		return SortByTTK, fmt.Errorf("unsupported sort_by %q (supported: ttk, dps, bullets, name)", s)
	}
}
