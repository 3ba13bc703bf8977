// Package processor contains the command-line workflow: it reads lyrics
// from a file, stdin or a batch file, runs the analyzer, renders text or
// JSON reports and optionally exports them to a database. Batch songs are
// analyzed concurrently and reported in input order.
package processor
