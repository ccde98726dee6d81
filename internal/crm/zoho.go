package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rapidcleanouts/landing/internal/config"
	"github.com/rapidcleanouts/landing/internal/leads"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

// ZohoClient pushes accepted leads into Zoho CRM. Every push exchanges the
// long-lived refresh token for a fresh access token; tokens are not cached.
type ZohoClient struct {
	cfg    config.ZohoConfig
	http   *resty.Client
	logger *logging.Logger
}

// NewZohoClient creates a CRM client, or nil when the integration is not
// configured.
func NewZohoClient(cfg config.ZohoConfig, logger *logging.Logger) *ZohoClient {
	if !cfg.Enabled() {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ZohoClient{
		cfg: cfg,
		http: resty.New().
			SetTimeout(30 * time.Second),
		logger: logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

type zohoLead struct {
	FirstName   string `json:"First_Name"`
	LastName    string `json:"Last_Name"`
	Company     string `json:"Company"`
	Phone       string `json:"Phone"`
	Email       string `json:"Email"`
	Street      string `json:"Street"`
	City        string `json:"City"`
	State       string `json:"State"`
	ZipCode     string `json:"Zip_Code"`
	Description string `json:"Description"`
	LeadSource  string `json:"Lead_Source"`
}

type createLeadRequest struct {
	Data    []zohoLead `json:"data"`
	Trigger []string   `json:"trigger"`
}

// PushLead creates one lead record in Zoho CRM.
func (c *ZohoClient) PushLead(ctx context.Context, lead leads.Lead) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	lastName := lead.LastName
	if lastName == "" {
		lastName = "Website Lead"
	}
	consent := "No"
	if lead.SMSConsent != "" {
		consent = "Yes"
	}

	body := createLeadRequest{
		Data: []zohoLead{{
			FirstName: lead.FirstName,
			LastName:  lastName,
			Company:   "Rapid Services of NC",
			Phone:     lead.Phone,
			Email:     lead.Email,
			Street:    lead.Address,
			City:      lead.City,
			State:     lead.State,
			ZipCode:   lead.Zip,
			Description: fmt.Sprintf("Timeline: %s\nSMS Consent: %s\n%s\nPhoto: %s",
				lead.Timeline, consent, lead.ProjectDetails, lead.PhotoURL),
			LeadSource: "Website Form",
		}},
		Trigger: []string{"workflow"},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Zoho-oauthtoken "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.cfg.APIDomain + "/crm/v2/Leads")
	if err != nil {
		return fmt.Errorf("crm: zoho lead create: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("crm: zoho lead create failed: %s", resp.String())
	}

	c.logger.Info("lead pushed to zoho crm", "name", lead.FullName())
	return nil
}

// accessToken exchanges the refresh token for a short-lived access token.
// The body is unmarshalled directly rather than via SetResult, which would
// silently skip responses missing a JSON content type.
func (c *ZohoClient) accessToken(ctx context.Context) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"refresh_token": c.cfg.RefreshToken,
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"grant_type":    "refresh_token",
		}).
		Post(c.cfg.AccountsURL + "/oauth/v2/token")
	if err != nil {
		return "", fmt.Errorf("crm: zoho token refresh: %w", err)
	}

	var tok tokenResponse
	if resp.IsSuccess() {
		if err := json.Unmarshal(resp.Body(), &tok); err != nil {
			return "", fmt.Errorf("crm: decode zoho token response: %w", err)
		}
	}
	if resp.IsError() || tok.AccessToken == "" {
		return "", fmt.Errorf("crm: failed to refresh zoho token (status %d)", resp.StatusCode())
	}
	return tok.AccessToken, nil
}
