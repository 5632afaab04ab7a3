// Package mirror appends created expenses to a Google spreadsheet. The
// mirror is append-only: it is a running export, not a second source of
// truth.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tracker/internal/core"
)

type Sheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsFromEnv creates a Sheets mirror using environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Auth comes from GOOGLE_CREDENTIALS_JSON
// or Application Default Credentials. GOOGLE_SHEET_NAME defaults to
// "Expenses".
func NewSheetsFromEnv(ctx context.Context) (*Sheets, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	var opts []goption.ClientOption
	if credsJSON := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); credsJSON != "" {
		opts = append(opts, goption.WithCredentialsJSON([]byte(credsJSON)))
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Sheets{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Append writes one expense as a row: id, date, title, amount, category,
// description.
func (s *Sheets) Append(ctx context.Context, e core.Expense) error {
	values := &gsheet.ValueRange{
		Values: [][]interface{}{{
			e.ID,
			e.Date.String(),
			e.Title,
			e.Amount.String(),
			string(e.Category),
			e.Description,
		}},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A:F", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", s.sheetName, err)
	}
	return nil
}
