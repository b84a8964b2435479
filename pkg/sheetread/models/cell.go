// Package models defines data structures for spreadsheet reading.
package models

// Cell is a single scalar cell value: string, float64 or bool.
// The empty string stands for a missing or empty cell.
type Cell = interface{}

// Row is an ordered sequence of cell values read by column position.
type Row []Cell

// EmptyCell is the value used for absent cells inside a row.
const EmptyCell = ""
