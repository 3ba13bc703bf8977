// Package batch reads files holding several songs. Songs are separated by
// lines consisting of "---" and may start with a "# Title" line. HTML
// files are flattened to text first.
package batch
