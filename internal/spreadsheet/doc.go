// Package spreadsheet provides the tabular backing store the task sheet
// lives in.
//
// A Table is addressed by 1-based row ranges of a fixed column width,
// matching A1 notation on the remote sheet:
//
//	spreadsheet.Rows(1, 1, 8)  // A1:H1, the header row
//	spreadsheet.From(1, 8)     // A1:H, every row
//
// GoogleTable talks to the Google Sheets API with a service account.
// SQLiteTable emulates a sheet on top of gorm for local runs and tests;
// deleting rows shifts the rows below up, as on the remote sheet.
package spreadsheet
