package records

import (
	"fmt"
	"sort"
)

// SortKey selects a record field to order by.
type SortKey int

const (
	SortByMaterial SortKey = iota
	SortByWidth
	SortByWeight
)

// String returns the configuration name of the key.
func (k SortKey) String() string {
	switch k {
	case SortByMaterial:
		return "material"
	case SortByWidth:
		return "width"
	case SortByWeight:
		return "weight"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey maps a configuration name to a SortKey.
func ParseSortKey(name string) (SortKey, error) {
	switch name {
	case "material":
		return SortByMaterial, nil
	case "width":
		return SortByWidth, nil
	case "weight":
		return SortByWeight, nil
	default:
		return 0, fmt.Errorf("unknown sort key %q", name)
	}
}

// compare orders a against b on the key. Nil values sort first.
func (k SortKey) compare(a, b Record) int {
	switch k {
	case SortByMaterial:
		return compareStrings(a.Material, b.Material)
	case SortByWidth:
		return compareInts(a.Width, b.Width)
	case SortByWeight:
		return compareInts(a.Weight, b.Weight)
	}
	panic(fmt.Sprintf("records: unhandled sort key %d", int(k)))
}

func compareInts(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareStrings(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func sameInt(a, b *int) bool {
	return compareInts(a, b) == 0
}

// Sorted returns copies of all records, stably ordered by the keys in priority order.
func (s *Store) Sorted(keys ...SortKey) []Record {
	out := s.All()
	sortRecords(out, keys)
	return out
}

func sortRecords(recs []Record, keys []SortKey) {
	sort.SliceStable(recs, func(i, j int) bool {
		for _, k := range keys {
			if c := k.compare(recs[i], recs[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// Groups partitions records into display groups.
//
// Records are ordered by material, then width. A new group starts whenever
// the width changes or the current group already holds maxGroupSize records.
// A maxGroupSize of zero or less disables the size limit. With hideFound,
// found records are dropped before grouping. No group is ever empty, and an
// empty store yields an empty list.
func (s *Store) Groups(maxGroupSize int, hideFound bool) [][]Record {
	var visible []Record
	for _, r := range s.records {
		if hideFound && r.Found {
			continue
		}
		visible = append(visible, r.clone())
	}
	sortRecords(visible, []SortKey{SortByMaterial, SortByWidth})

	groups := [][]Record{}
	var current []Record
	for _, r := range visible {
		if len(current) > 0 {
			full := maxGroupSize > 0 && len(current) >= maxGroupSize
			if full || !sameInt(current[len(current)-1].Width, r.Width) {
				groups = append(groups, current)
				current = nil
			}
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
