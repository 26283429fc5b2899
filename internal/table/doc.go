// Package table loads customer and reference tables from CSV, TSV and XLSX
// files into records, suggests which columns to match, and writes match
// results back out next to the original columns.
package table
