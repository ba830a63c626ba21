package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentalops-backend/internal/domain"
)

// GatewayMessenger posts reminders to an HTTP SMS/WhatsApp gateway. The
// gateway contract is a JSON POST returning {"success": bool, "error": str}.
type GatewayMessenger struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGatewayMessenger(baseURL, apiKey string) *GatewayMessenger {
	return &GatewayMessenger{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type gatewayRequest struct {
	To       string          `json:"to"`
	Template string          `json:"template"`
	Params   ReminderMessage `json:"params"`
}

type gatewayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (m *GatewayMessenger) SendReturnReminder(ctx context.Context, phone string, msg ReminderMessage) error {
	body, err := json.Marshal(gatewayRequest{
		To:       phone,
		Template: "return_reminder",
		Params:   msg,
	})
	if err != nil {
		return &domain.DispatchError{Channel: domain.ReminderChannelSMS, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return &domain.DispatchError{Channel: domain.ReminderChannelSMS, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return &domain.DispatchError{Channel: domain.ReminderChannelSMS, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &domain.DispatchError{
			Channel: domain.ReminderChannelSMS,
			Err:     fmt.Errorf("gateway returned status %d", resp.StatusCode),
		}
	}

	var gw gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return &domain.DispatchError{Channel: domain.ReminderChannelSMS, Err: err}
	}
	if !gw.Success {
		return &domain.DispatchError{
			Channel: domain.ReminderChannelSMS,
			Err:     fmt.Errorf("gateway rejected message: %s", gw.Error),
		}
	}
	return nil
}
