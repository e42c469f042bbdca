package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

type httpRemoteStore struct {
	client *utils.HTTPClient

	token     string
	wsAddress string
	baseURL   string

	// breaker trips after consecutive transport failures so the sync engine
	// can tell "offline" from a slow request without waiting out every
	// timeout.
	breaker *gobreaker.CircuitBreaker

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-store",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &httpRemoteStore{
		client:    client,
		wsAddress: adapterCfg.WSAddress,
		baseURL:   baseURL,
		breaker:   breaker,
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpRemoteStore) Token() string {
	return h.token
}

// execute runs one request through the circuit breaker. Transport errors and
// 5xx responses count as failures; 4xx responses mean the server is reachable
// and leave the breaker alone.
func (h *httpRemoteStore) execute(fn func() (*resty.Response, error)) (*resty.Response, error) {
	result, err := h.breaker.Execute(func() (any, error) {
		resp, reqErr := fn()
		if reqErr != nil {
			return nil, reqErr
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, mapHTTPError(resp)
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	resp, _ := result.(*resty.Response)
	return resp, err
}

// RegisterDevice implements [RemoteStore]. It POSTs the device identifier to
// POST /api/devices/register and stores the returned bearer token via
// SetToken.
func (h *httpRemoteStore) RegisterDevice(ctx context.Context, deviceID string) (models.DeviceToken, error) {
	var deviceToken models.DeviceToken

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(models.DeviceRegistration{DeviceID: deviceID}).
			SetResult(&deviceToken).
			Post("/api/devices/register")
	})
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("register device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeviceToken{}, err
	}

	if deviceToken.Token == "" {
		return models.DeviceToken{}, fmt.Errorf("register device: empty token in response")
	}

	h.SetToken(deviceToken.Token)
	return deviceToken, nil
}

// UpsertNote implements [RemoteStore]. It PUTs the full note revision to
// PUT /api/notes and returns the stored revision with its server stamp.
func (h *httpRemoteStore) UpsertNote(ctx context.Context, note models.Note) (models.RemoteNote, error) {
	var stored models.RemoteNote

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(h.token).
			SetBody(note).
			SetResult(&stored).
			Put("/api/notes")
	})
	if err != nil {
		return models.RemoteNote{}, fmt.Errorf("upsert note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteNote{}, err
	}

	return stored, nil
}

// QueryChangedSince implements [RemoteStore]. It GETs a page of the changes
// feed. Records are decoded one by one: a malformed record is logged and
// skipped so the rest of the page still applies.
func (h *httpRemoteStore) QueryChangedSince(ctx context.Context, since time.Time, limit int) ([]models.RemoteNote, int, error) {
	log := logger.FromContext(ctx)

	var page models.ChangesResponse

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(h.token).
			SetQueryParam("since", since.UTC().Format(time.RFC3339Nano)).
			SetQueryParam("limit", strconv.Itoa(limit)).
			SetResult(&page).
			Get("/api/notes/changes")
	})
	if err != nil {
		return nil, 0, fmt.Errorf("changes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	notes := make([]models.RemoteNote, 0, len(page.Notes))
	for _, raw := range page.Notes {
		var note models.RemoteNote
		if decodeErr := json.Unmarshal(raw, &note); decodeErr != nil {
			log.Warn().
				Err(decodeErr).
				Str("func", "httpRemoteStore.QueryChangedSince").
				Msg("skipping malformed remote record")
			continue
		}
		notes = append(notes, note)
	}

	return notes, page.Count, nil
}

// Ping implements [RemoteStore]. It probes GET /api/health.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.execute(func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			Get("/api/health")
	})
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

// Online implements [RemoteStore]. The adapter is considered offline only
// while the breaker is open.
func (h *httpRemoteStore) Online() bool {
	return h.breaker.State() != gobreaker.StateOpen
}
