package rhyme

// DefaultThreshold is the minimum similarity for two end words to share a
// rhyme group.
const DefaultThreshold = 0.4

// NoGroup marks an entry that found no rhyme partner.
const NoGroup = -1

// Entry is one line-ending word together with its phonetic key.
type Entry struct {
	Word string
	Key  string
}

// Scorer compares two phonetic keys.
type Scorer func(a, b string) float64

// Cluster groups entries using Similarity. See ClusterWith.
func Cluster(entries []Entry, threshold float64) []int {
	return ClusterWith(entries, threshold, Similarity)
}

// ClusterWith assigns a group id to every entry, or NoGroup. The result has
// the same length and order as entries.
//
// Entries are scanned first to last. An unassigned entry opens a group and
// pulls in every later unassigned entry scoring at least threshold against
// it. The group is kept only if something joined; otherwise the entry stays
// ungrouped. Once assigned, an entry is never reconsidered, so an entry that
// matches two earlier words joins whichever group was opened first.
func ClusterWith(entries []Entry, threshold float64, score Scorer) []int {
	groups := make([]int, len(entries))
	for i := range groups {
		groups[i] = NoGroup
	}

	next := 0
	for i, current := range entries {
		if groups[i] != NoGroup {
			continue
		}

		joined := false
		for j := i + 1; j < len(entries); j++ {
			if groups[j] != NoGroup {
				continue
			}
			if score(current.Key, entries[j].Key) >= threshold {
				groups[j] = next
				joined = true
			}
		}

		if joined {
			groups[i] = next
			next++
		}
	}

	return groups
}
