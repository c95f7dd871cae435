// Package exporter persists filtered subsets: one CSV per subset plus a
// consolidated multi-sheet workbook for spreadsheet consumers.
package exporter
