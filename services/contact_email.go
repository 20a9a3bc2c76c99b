package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mack-digital/mack-site/backend/config"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ContactMessage is one submission of the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendContactNotification forwards a contact-form submission to the agency
// inbox via the Resend API.
//
// Required configuration:
//   - RESEND_API_KEY: the Resend API key
//
// Optional configuration:
//   - RESEND_FROM_EMAIL: sender address, defaults to the website sender
//   - CONTACT_RECIPIENT: inbox address, defaults to hello@mack-digital.de
func SendContactNotification(cfg map[string]string, msg ContactMessage) error {
	if strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("contact message requires an email and a message body")
	}

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "MACK Website <website@mack-digital.de>")
	recipient := config.GetString(cfg, "CONTACT_RECIPIENT", "hello@mack-digital.de")

	body := fmt.Sprintf("Neue Kontaktanfrage über die Website\n\nName: %s\nE-Mail: %s\n\n%s",
		msg.Name, msg.Email, msg.Message)

	payload := ResendEmailRequest{
		From:    from,
		To:      []string{recipient},
		Subject: fmt.Sprintf("Kontaktanfrage von %s", msg.Name),
		Text:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp ResendErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var emailResp ResendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&emailResp); err == nil {
		log.Info().Str("emailID", emailResp.ID).Msg("contact notification sent")
	}
	return nil
}
