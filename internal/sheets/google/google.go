// Package google exports monthly plan summaries to a Google Sheets
// spreadsheet using Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"budget/internal/core"
	ports "budget/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	planSheet     string
}

var _ ports.PlanWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_PLAN_SHEET_NAME (default "Plans").
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	planSheet := strings.TrimSpace(os.Getenv("GOOGLE_PLAN_SHEET_NAME"))
	if planSheet == "" {
		planSheet = "Plans"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		planSheet:     planSheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var opts []goption.ClientOption
	switch {
	case serviceAccountJSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(serviceAccountJSON)))
	case serviceAccountFile != "":
		opts = append(opts, goption.WithCredentialsFile(serviceAccountFile))
	default:
		return nil, errors.New("missing Service Account credentials: set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS")
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// AppendPlan writes one summary row for a committed plan:
// month, scenario, monthly income, savings, expenses, leftover, created at.
func (c *Client) AppendPlan(ctx context.Context, month string, plan core.MonthlyPlan) (string, error) {
	row := []interface{}{
		month,
		plan.ScenarioName,
		plan.NetIncome,
		plan.TotalSavings,
		plan.TotalExpenses,
		plan.EstLeftover,
		plan.CreatedAt.Format(time.RFC3339),
	}

	rng := fmt.Sprintf("%s!A:G", c.planSheet)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append plan row: %w", err)
	}

	rowRef := ""
	if resp.Updates != nil {
		rowRef = resp.Updates.UpdatedRange
	}

	slog.InfoContext(ctx, "Plan synced to Google Sheets",
		"month", month,
		"scenario", plan.ScenarioName,
		"sheets_ref", rowRef)

	return rowRef, nil
}
