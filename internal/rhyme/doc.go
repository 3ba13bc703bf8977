// Package rhyme scores phonetic keys against each other and groups
// line-ending words into rhyme clusters. Scoring looks only at word
// endings, and clustering is a greedy first-to-last pass whose output
// depends on scan order.
package rhyme
