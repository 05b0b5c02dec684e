package spreadsheet

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// DefaultSheetTitle is the sheet used when it exists; otherwise the first
// sheet of the spreadsheet is used.
const DefaultSheetTitle = "TaskManager"

// GoogleTable is a Table backed by one sheet of a Google spreadsheet.
// It is safe for concurrent use and is meant to be built once per process.
type GoogleTable struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetTitle    string
	sheetID       int64
}

// NewGoogleTable resolves the target sheet of the spreadsheet. httpClient
// must already carry the service credential.
func NewGoogleTable(ctx context.Context, httpClient *http.Client, spreadsheetID, preferredTitle string) (*GoogleTable, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return newGoogleTable(ctx, svc, spreadsheetID, preferredTitle)
}

func newGoogleTable(ctx context.Context, svc *sheets.Service, spreadsheetID, preferredTitle string) (*GoogleTable, error) {
	doc, err := svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	props, err := pickSheet(doc.Sheets, preferredTitle)
	if err != nil {
		return nil, err
	}

	return &GoogleTable{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetTitle:    props.Title,
		sheetID:       props.SheetId,
	}, nil
}

func pickSheet(list []*sheets.Sheet, preferredTitle string) (*sheets.SheetProperties, error) {
	var first *sheets.SheetProperties
	for _, s := range list {
		if s == nil || s.Properties == nil {
			continue
		}
		if first == nil {
			first = s.Properties
		}
		if s.Properties.Title == preferredTitle {
			return s.Properties, nil
		}
	}
	if first == nil {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	return first, nil
}

// SheetTitle returns the title of the sheet in use.
func (g *GoogleTable) SheetTitle() string {
	return g.sheetTitle
}

func (g *GoogleTable) Get(ctx context.Context, r Range) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, r.A1(g.sheetTitle)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}
	return fromValues(resp.Values), nil
}

func (g *GoogleTable) Update(ctx context.Context, r Range, rows [][]string, input ValueInput) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, r.A1(g.sheetTitle), vr).
		ValueInputOption(string(input)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}
	return nil
}

func (g *GoogleTable) Append(ctx context.Context, r Range, rows [][]string, input ValueInput) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, r.A1(g.sheetTitle), vr).
		ValueInputOption(string(input)).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append values: %w", err)
	}
	return nil
}

func (g *GoogleTable) Clear(ctx context.Context, r Range) error {
	_, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, r.A1(g.sheetTitle), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear values: %w", err)
	}
	return nil
}

func (g *GoogleTable) DeleteRows(ctx context.Context, start, end int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{DeleteDimension: deleteRowsRequest(g.sheetID, start, end)},
		},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete rows: %w", err)
	}
	return nil
}

// deleteRowsRequest forces zero values onto the wire: sheet 0 and row 0
// are valid and would otherwise be dropped by omitempty.
func deleteRowsRequest(sheetID int64, start, end int) *sheets.DeleteDimensionRequest {
	return &sheets.DeleteDimensionRequest{
		Range: &sheets.DimensionRange{
			SheetId:         sheetID,
			Dimension:       "ROWS",
			StartIndex:      int64(start),
			EndIndex:        int64(end),
			ForceSendFields: []string{"SheetId", "StartIndex"},
		},
	}
}

func fromValues(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return values
}
