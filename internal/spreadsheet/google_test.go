package spreadsheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func newFakeSheetsServer(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*sheets.Service, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc, &requests
}

func spreadsheetJSON(titles ...string) string {
	type props struct {
		SheetID int64  `json:"sheetId"`
		Title   string `json:"title"`
	}
	type sheet struct {
		Properties props `json:"properties"`
	}
	doc := struct {
		Sheets []sheet `json:"sheets"`
	}{}
	for i, title := range titles {
		doc.Sheets = append(doc.Sheets, sheet{Properties: props{SheetID: int64(i * 100), Title: title}})
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

func TestNewGoogleTable_PrefersNamedSheet(t *testing.T) {
	svc, _ := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, spreadsheetJSON("Sheet1", "TaskManager"))
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)
	assert.Equal(t, "TaskManager", table.SheetTitle())
	assert.Equal(t, int64(100), table.sheetID)
}

func TestNewGoogleTable_FallsBackToFirstSheet(t *testing.T) {
	svc, _ := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, spreadsheetJSON("Sheet1", "Archive"))
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", table.SheetTitle())
}

func TestGoogleTable_GetConvertsCells(t *testing.T) {
	svc, requests := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/values/") {
			_, _ = io.WriteString(w, `{"values":[["id","title"],["1",2.5],[]]}`)
			return
		}
		_, _ = io.WriteString(w, spreadsheetJSON("TaskManager"))
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)

	rows, err := table.Get(context.Background(), From(1, 8))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id", "title"}, {"1", "2.5"}, {}}, rows)

	last := (*requests)[len(*requests)-1]
	assert.Equal(t, "/v4/spreadsheets/doc-1/values/'TaskManager'!A1:H", last.Path)
}

func TestGoogleTable_DeleteRowsSendsZeroSheetID(t *testing.T) {
	svc, requests := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ":batchUpdate") {
			_, _ = io.WriteString(w, `{"spreadsheetId":"doc-1"}`)
			return
		}
		_, _ = io.WriteString(w, spreadsheetJSON("TaskManager"))
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)
	require.NoError(t, table.DeleteRows(context.Background(), 2, 3))

	last := (*requests)[len(*requests)-1]
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Contains(t, last.Body, `"sheetId":0`)
	assert.Regexp(t, `"startIndex":"?2"?`, last.Body)
	assert.Regexp(t, `"endIndex":"?3"?`, last.Body)
	assert.Contains(t, last.Body, `"dimension":"ROWS"`)
}

func TestGoogleTable_UpdatePassesValueInput(t *testing.T) {
	svc, requests := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/values/") {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		_, _ = io.WriteString(w, spreadsheetJSON("TaskManager"))
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)
	require.NoError(t, table.Update(context.Background(), Row(1, 2), [][]string{{"id", "title"}}, InputRaw))

	last := (*requests)[len(*requests)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Contains(t, last.Query, "valueInputOption=RAW")
	assert.Contains(t, last.Body, `"values":[["id","title"]]`)
}

func TestGoogleTable_WrapsUpstreamErrors(t *testing.T) {
	calls := 0
	svc, _ := newFakeSheetsServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = io.WriteString(w, spreadsheetJSON("TaskManager"))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"permission denied"}}`)
	})

	table, err := newGoogleTable(context.Background(), svc, "doc-1", DefaultSheetTitle)
	require.NoError(t, err)

	_, err = table.Get(context.Background(), From(1, 8))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get values")
	assert.Contains(t, err.Error(), "permission denied")
}
