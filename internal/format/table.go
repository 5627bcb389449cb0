// Package format turns lookup results into table cells.
package format

import (
	"fmt"
	"time"

	"pkt.systems/sndbq/schema"
)

// Header is the fixed result table header.
var Header = []string{"Program", "Status", "Timestamp", "SAP MM", "Heat Number", "PO Number", "SheetName", "Operator"}

// StatusColumn is the index of the status cell in a row.
const StatusColumn = 1

// Timestamp formats t as " 5.Mar.2024 14:30 pm": space-padded day and
// 24-hour clock followed by a lowercase meridiem.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("_2.Jan.2006") + " " + fmt.Sprintf("%2d", t.Hour()) + t.Format(":04 pm")
}

// Row returns the table cells for program, one per Header column.
func Row(program schema.Program) []string {
	row := []string{
		program.Name,
		string(program.State.Kind),
		Timestamp(program.State.Timestamp),
		program.Sheet.MaterialMaster,
		"",
		"",
		program.Sheet.Name,
		"",
	}
	if program.State.Kind == schema.StatusUpdated {
		row[4] = program.Sheet.HeatNumber
		row[5] = program.Sheet.PONumber
		row[7] = program.State.Operator
	}
	return row
}
