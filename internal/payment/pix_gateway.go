package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"minecart-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultPixBaseURL = "https://api.pixpag.com.br"

type pixGateway struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	saoPauloLoc   *time.Location
	callbackToken string
}

// ----------------- Constructor -----------------

func NewPixGateway(apiKey, baseURL, callbackToken string) Gateway {
	if apiKey == "" {
		logger.L().Warn("PIX API key is empty")
	}
	if baseURL == "" {
		baseURL = defaultPixBaseURL
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		logger.L().Error("failed to load Sao Paulo location, defaulting to UTC", zap.Error(err))
		loc = time.UTC
	}

	return &pixGateway{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		saoPauloLoc:   loc,
		callbackToken: callbackToken,
	}
}

type pixChargeResponse struct {
	ChargeID     string     `json:"charge_id"`
	ReferenceID  string     `json:"reference_id"`
	Status       string     `json:"status"`
	Amount       string     `json:"amount"`
	CopyPasteKey string     `json:"pix_copia_e_cola"`
	QRImageURL   string     `json:"qr_image_url"`
	PaymentLink  string     `json:"payment_link"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// ----------------- CreateCharge -----------------

func (g *pixGateway) CreateCharge(
	ctx context.Context,
	referenceID string,
	payerEmail string,
	amount decimal.Decimal,
	items []ChargeItem,
) (*ChargeResponse, error) {

	log := logger.L().With(
		zap.String("reference_id", referenceID),
		zap.String("payer", payerEmail),
		zap.String("amount", amount.StringFixed(2)),
	)

	expiry := time.Now().In(g.saoPauloLoc).Add(30 * time.Minute).Format(time.RFC3339)

	body := map[string]interface{}{
		"reference_id": referenceID,
		"currency":     "BRL",
		"amount":       amount.StringFixed(2),
		"payer": map[string]interface{}{
			"email": payerEmail,
		},
		"metadata": map[string]interface{}{
			"items": items,
		},
		"expires_at": expiry,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal charge request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/pix/charges", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.apiKey, "")
	req.Header.Add("Content-Type", "application/json")

	log.Info("Sending charge request to PIX provider")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("PIX request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read pix response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("PIX provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("pix error: %s", string(bodyBytes))
	}

	var res pixChargeResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding PIX response", zap.Error(err))
		return nil, err
	}

	log.Info("PIX charge created",
		zap.String("payment_id", res.ChargeID),
		zap.String("status", res.Status),
	)

	parsedAmount, err := decimal.NewFromString(res.Amount)
	if err != nil {
		parsedAmount = amount
	}

	var expiresAt time.Time
	if res.ExpiresAt != nil {
		expiresAt = *res.ExpiresAt
	} else {
		expiresAt = time.Now().Add(30 * time.Minute)
	}

	return &ChargeResponse{
		PaymentID:   res.ChargeID,
		ReferenceID: res.ReferenceID,
		Amount:      parsedAmount,
		Status:      NormalizeStatus(res.Status),
		PayableCode: res.CopyPasteKey,
		QRImageURL:  res.QRImageURL,
		PaymentLink: res.PaymentLink,
		ExpiresAt:   expiresAt,
	}, nil
}

// ----------------- GetChargeStatus -----------------

func (g *pixGateway) GetChargeStatus(ctx context.Context, paymentID string) (*ChargeStatus, error) {
	log := logger.L().With(zap.String("payment_id", paymentID))

	url := fmt.Sprintf("%s/v1/pix/charges/%s", g.baseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.apiKey, "")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Request to PIX provider failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read pix response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("PIX provider returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("pix error: %s", string(bodyBytes))
	}

	var charge struct {
		Status string     `json:"status"`
		PaidAt *time.Time `json:"paid_at"`
	}
	if err := json.Unmarshal(bodyBytes, &charge); err != nil {
		log.Error("Failed decoding charge", zap.Error(err))
		return nil, err
	}

	return &ChargeStatus{
		Status: NormalizeStatus(charge.Status),
		PaidAt: charge.PaidAt,
	}, nil
}

// ----------------- CancelCharge -----------------

func (g *pixGateway) CancelCharge(ctx context.Context, paymentID string) error {
	log := logger.L().With(zap.String("payment_id", paymentID))

	url := fmt.Sprintf("%s/v1/pix/charges/%s/cancel", g.baseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return err
	}

	req.SetBasicAuth(g.apiKey, "")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("PIX request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read pix response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Failed to cancel charge",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("pix cancel error: %s", string(bodyBytes))
	}

	log.Info("Charge cancelled successfully")
	return nil
}

// ----------------- Verify Signature -----------------

func (g *pixGateway) VerifySignature(r *http.Request) error {
	sig := r.Header.Get("x-callback-token")
	expected := g.callbackToken

	if expected == "" {
		return nil // skip in dev
	}

	if sig != expected {
		return errors.New("invalid webhook signature")
	}
	return nil
}

// NormalizeStatus folds the provider's status vocabulary into ours.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(raw) {
	case "pending", "created", "active", "waiting":
		return StatusPending
	case "processing", "in_process":
		return StatusProcessing
	case "approved", "paid", "concluded", "completed":
		return StatusApproved
	case "rejected", "failed", "expired":
		return StatusRejected
	case "cancelled", "canceled", "removed_by_psp", "removed_by_user":
		return StatusCancelled
	default:
		return StatusPending
	}
}
