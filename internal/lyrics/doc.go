// Package lyrics analyzes Hebrew song lyrics for end-of-line rhymes.
//
// Analyze runs the whole pipeline: lines are normalized, Hebrew words are
// extracted and stop-words dropped, every word gets a phonetic key, the
// last word of each line is clustered by key similarity and the clusters
// are lettered into a rhyme scheme such as "AABB".
package lyrics
