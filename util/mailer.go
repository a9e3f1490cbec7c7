package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Mailer sends a templated transactional email. Implementations are
// fire-and-forget from the caller's perspective.
type Mailer interface {
	Send(ctx context.Context, templateParams map[string]string) error
}

var mailer Mailer

// SetMailer injects the notification mailer. A nil mailer disables admin
// notifications silently.
func SetMailer(m Mailer) {
	mailer = m
}

// GetMailer returns the injected mailer, or nil when notifications are disabled.
func GetMailer() Mailer {
	return mailer
}

// EmailJSMailer posts to the EmailJS REST API. All four settings (service id,
// template id, public key, admin recipient) must be present; otherwise
// NewEmailJSMailer returns nil and the feature stays off.
type EmailJSMailer struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	AdminEmail string
	Endpoint   string
	Client     *http.Client
}

func NewEmailJSMailer(serviceID, templateID, publicKey, adminEmail string) *EmailJSMailer {
	if serviceID == "" || templateID == "" || publicKey == "" || adminEmail == "" {
		return nil
	}
	return &EmailJSMailer{
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		AdminEmail: adminEmail,
		Endpoint:   emailJSEndpoint,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one templated email. The admin recipient is merged into the
// template parameters under "admin_email".
func (m *EmailJSMailer) Send(ctx context.Context, templateParams map[string]string) error {
	params := make(map[string]string, len(templateParams)+1)
	for k, v := range templateParams {
		params[k] = v
	}
	params["admin_email"] = m.AdminEmail

	payload, err := json.Marshal(map[string]interface{}{
		"service_id":      m.ServiceID,
		"template_id":     m.TemplateID,
		"user_id":         m.PublicKey,
		"template_params": params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emailjs send failed, status: %d", resp.StatusCode)
	}
	return nil
}
