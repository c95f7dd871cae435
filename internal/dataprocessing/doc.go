// Package dataprocessing filters the measurement table into the subsets the
// renderers consume.
//
// # Architecture
//
// The package has three responsibilities:
//
// 1. Subset filters: FilterFecal and FilterOrgan select and project rows
// 2. Coercion: CoerceCounts turns the count column numeric, NaN on failure
// 3. Verification: VerifyTreatments rejects unexpected treatment labels
//
// # Data flow
//
//	CSV table → dataset.Load → DataFrame → Filter* → coerced subset → exporter/chart
//
// Filters are order-preserving with respect to the input table and never
// drop a row for an unparsable count; the value becomes missing instead.
//
// # Error handling
//
// An unrecognized treatment label is an error, not a silent exclusion:
// a third arm in the data would otherwise vanish from every chart without
// a trace. VerifyTreatments runs before any rendering.
package dataprocessing
