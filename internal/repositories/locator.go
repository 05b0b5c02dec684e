package repository

// Location is the result of looking a task id up in the sheet rows.
// Position is the 1-based sheet row and is only valid until the next
// mutation of the sheet.
type Location struct {
	Found    bool
	Position int
	Headers  []string
}

// Locate scans data rows (rows[1:]) in order and returns the first whose
// identifier cell equals id. Later rows carrying the same id are ignored.
func Locate(rows [][]string, id string) Location {
	if len(rows) <= 1 || id == "" {
		return Location{}
	}

	for i := 1; i < len(rows); i++ {
		if rowID(rows[i]) == id {
			return Location{
				Found:    true,
				Position: i + 1,
				Headers:  rows[0],
			}
		}
	}

	return Location{}
}

func rowID(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// isLive reports whether a data row holds a record.
func isLive(row []string) bool {
	return rowID(row) != ""
}
