package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"nutriscan/internal/structures"
	"strings"
	"time"
)

const (
	analyzePath   = "/analyze-image/"
	pingPath      = "/ping"
	defaultName   = "food.jpg"
	maxErrorBody  = 512
	maxResultBody = 4 << 20
)

type AnalyzerInterface interface {
	Analyze(ctx context.Context, image []byte, filename string) (*models.ScanResult, error)
	Ping(ctx context.Context) error
}

// Client talks to the remote food recognition service.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) AnalyzerInterface {
	timeout := conf.Analysis.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(conf.Analysis.Endpoint, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *Client) Analyze(ctx context.Context, image []byte, filename string) (*models.ScanResult, error) {
	if filename == "" {
		filename = defaultName
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(image); err != nil {
		return nil, err
	}
	if err = form.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+analyzePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Errorf(providers.TypeAnalysis, "Analysis service returned %d: %s", resp.StatusCode, snippet)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBody))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	result, err := decodeScanResult(payload)
	if err != nil {
		c.logger.Warnf(providers.TypeAnalysis, "Unusable analysis payload (%d bytes)", len(payload))
		return nil, err
	}
	c.logger.Infof(providers.TypeAnalysis, "Analysed %q with %d items in %s", result.MealName, len(result.DetectedFoods), time.Since(started))
	return result, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		c.logger.Errorf(providers.TypeAnalysis, "Analysis timed out after %s", c.timeout)
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	c.logger.Errorf(providers.TypeAnalysis, "Analysis service unreachable: %s", err)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Ping wakes the service up. Callers ignore its error.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+pingPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugf(providers.TypeAnalysis, "Ping failed: %s", err)
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
