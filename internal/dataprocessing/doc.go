// Package dataprocessing implements the normalization pipeline that turns
// raw NSE end-of-day files into canonical records.
//
// Each category (indices, equities, futures) runs the same flow: read the
// primary file, read the optional secondary file, merge per category
// business rules, then sanitize every candidate row into a domain.Record.
// A malformed row is dropped, never the batch; a missing input degrades
// per category rather than failing the date.
package dataprocessing
