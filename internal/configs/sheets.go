package config

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	sheets "google.golang.org/api/sheets/v4"

	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

var ErrNoCredentials = errors.New("no Google service account credentials configured")

// CredentialsJSON returns the service account key. The base64 variable
// wins over the file path.
func CredentialsJSON(cfg Config) ([]byte, error) {
	if encoded := strings.TrimSpace(cfg.CredentialsBase64); encoded != "" {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode GOOGLE_APPLICATION_CREDENTIALS_BASE64: %w", err)
		}
		return raw, nil
	}
	if cfg.CredentialsFile != "" {
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return raw, nil
	}
	return nil, ErrNoCredentials
}

// NewSheetsHTTPClient builds the authorised client shared by every Sheets
// call. ctx is used for token refreshes and must outlive the client.
func NewSheetsHTTPClient(ctx context.Context, cfg Config) (*http.Client, error) {
	raw, err := CredentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	client := jwtConfig.Client(ctx)
	client.Timeout = cfg.SheetsTimeout
	return client, nil
}

func NewGoogleTable(ctx context.Context, cfg Config) (*spreadsheet.GoogleTable, error) {
	client, err := NewSheetsHTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return spreadsheet.NewGoogleTable(ctx, client, cfg.SpreadsheetID, cfg.SheetTitle)
}
