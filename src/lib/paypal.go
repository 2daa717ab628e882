package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"spenden/src/config"
	"spenden/src/types"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	PAYPAL_SANDBOX_API_BASE = "https://api-m.sandbox.paypal.com"
	PAYPAL_LIVE_API_BASE    = "https://api-m.paypal.com"

	// Refresh the cached token a minute before PayPal expires it
	tokenSafetyMargin = 60 * time.Second
)

// PayPalClient wraps the Checkout Orders v2 API. The access token lives in a
// single mutexed cache slot so concurrent requests share one refresh.
type PayPalClient struct {
	APIBase      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

var paypalClient *PayPalClient

func GetPayPalClient() *PayPalClient {
	if paypalClient != nil {
		return paypalClient
	}
	cfg := config.Get()
	base := PAYPAL_SANDBOX_API_BASE
	if strings.ToLower(cfg.PayPalMode) == "live" {
		base = PAYPAL_LIVE_API_BASE
	}
	paypalClient = &PayPalClient{
		APIBase:      base,
		ClientID:     cfg.PayPalClientID,
		ClientSecret: cfg.PayPalClientSecret,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
	return paypalClient
}

// NewPayPalClient Replace gateway instance with custom client implementation
func NewPayPalClient(c *PayPalClient) *PayPalClient {
	paypalClient = c
	return paypalClient
}

func (c *PayPalClient) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return "", errors.New("PayPal credentials not configured. Set PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET")
	}
	if c.ClientID == c.ClientSecret {
		return "", errors.New("PayPal client secret is set to the same value as the client id")
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBase+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Error getting PayPal access token")
		return "", errors.New("failed to authenticate with PayPal")
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		log.WithField("status", res.Status).Error("Error getting PayPal access token")
		return "", fmt.Errorf("failed to get PayPal access token: %s", res.Status)
	}

	token := gjson.GetBytes(body, "access_token").String()
	expiresIn := gjson.GetBytes(body, "expires_in").Int()
	if token == "" {
		return "", errors.New("PayPal token response is missing access_token")
	}
	c.token = token
	c.expiresAt = time.Now().Add(time.Duration(expiresIn)*time.Second - tokenSafetyMargin)

	return token, nil
}

// CreateOrder registers a CAPTURE-intent order for the amount in EUR and
// returns the provider's opaque order id.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount float64, description string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": config.CURRENCY,
					"value":         fmt.Sprintf("%.2f", amount),
				},
				"description": description,
			},
		},
		"application_context": map[string]string{
			"brand_name":          config.GetOrganization().Name,
			"locale":              "de-DE",
			"landing_page":        "NO_PREFERENCE",
			"shipping_preference": "NO_SHIPPING",
			"user_action":         "PAY_NOW",
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBase+"/v2/checkout/orders", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Error creating PayPal order")
		return "", err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.WithFields(log.Fields{
			"status":   res.Status,
			"response": string(body),
		}).Error("PayPal order creation failed")
		return "", errors.New("failed to create PayPal order")
	}

	orderID := gjson.GetBytes(body, "id").String()
	if orderID == "" {
		return "", errors.New("PayPal order response is missing an order id")
	}
	return orderID, nil
}

// CaptureOrder attempts the capture and reports the gateway's verdict. A
// transport-level failure is returned as an error; everything else, including
// a rejected or non-COMPLETED capture, lands in the result.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*types.CaptureResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.APIBase, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("order_id", orderID).Error("Error capturing PayPal order")
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = "Failed to capture payment"
		}
		log.WithFields(log.Fields{
			"order_id": orderID,
			"status":   res.Status,
			"response": string(body),
		}).Error("PayPal capture failed")
		return &types.CaptureResult{Success: false, Error: msg}, nil
	}

	status := gjson.GetBytes(body, "status").String()
	transactionID := gjson.GetBytes(body, "purchase_units.0.payments.captures.0.id").String()

	if status != "COMPLETED" {
		return &types.CaptureResult{
			Success: false,
			Error:   fmt.Sprintf("Payment status: %s", status),
		}, nil
	}
	return &types.CaptureResult{
		Success:       true,
		TransactionID: transactionID,
	}, nil
}
