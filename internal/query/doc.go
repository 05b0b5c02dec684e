// Package query filters and aggregates task lists that are already in
// memory. Nothing here talks to the sheet.
//
// Day comparisons normalize both sides to midnight in the given location.
// Tasks whose date cell does not parse never match a date filter and are
// left out of every time bucket.
package query
