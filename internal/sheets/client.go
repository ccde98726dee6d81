package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/rapidcleanouts/landing/internal/config"
	"github.com/rapidcleanouts/landing/internal/leads"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// appendRange targets the Leads tab; the API appends below the last row.
const appendRange = "Leads!A1"

// Client appends lead rows to a Google Sheet using a service account. The
// sheet is the system of record for accepted leads.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *logging.Logger
}

// NewClient builds a Sheets client from service-account credentials. Env vars
// often carry the private key with literal \n sequences, so those are
// unescaped before use.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *logging.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, leads.ErrSheetsNotConfigured
	}
	if logger == nil {
		logger = logging.Default()
	}

	jwtCfg := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// Append writes exactly one row for the lead. No idempotency: a retried
// submission produces a duplicate row.
func (c *Client) Append(ctx context.Context, lead leads.Lead) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{leadRow(lead)},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}

	c.logger.Info("lead row appended", "spreadsheet_id", c.spreadsheetID)
	return nil
}

// leadRow flattens a lead into the sheet's fixed column order.
func leadRow(lead leads.Lead) []interface{} {
	return []interface{}{
		lead.SubmittedAt.Format(time.RFC3339),
		lead.FirstName,
		lead.LastName,
		lead.Phone,
		lead.Email,
		lead.Address,
		lead.City,
		lead.State,
		lead.Zip,
		lead.Timeline,
		lead.SMSConsent,
		lead.ProjectDetails,
		lead.PhotoURL,
	}
}
