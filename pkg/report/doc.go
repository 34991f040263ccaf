// Package report writes calculator results: the whitespace separated text
// tables consumed by plotting scripts and optional HTML charts.
package report
