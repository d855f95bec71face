// Package report turns HTML documents into PDFs through a Gotenberg server.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Paper is a page size and margin set in inches, as Gotenberg expects.
type Paper struct {
	Width, Height float64
	Margin        float64
}

// A4 is the invoice page.
var A4 = Paper{Width: 8.27, Height: 11.69, Margin: 0.4}

// Client talks to the Gotenberg chromium route.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for baseURL, e.g. http://127.0.0.1:3000.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Ping checks that Gotenberg answers its health route.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report: ping: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("report: gotenberg health returned %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts a complete HTML document to PDF on the given paper.
func (c *Client) RenderHTML(ctx context.Context, html []byte, paper Paper) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(html); err != nil {
		return nil, err
	}
	fields := map[string]float64{
		"paperWidth":   paper.Width,
		"paperHeight":  paper.Height,
		"marginTop":    paper.Margin,
		"marginBottom": paper.Margin,
		"marginLeft":   paper.Margin,
		"marginRight":  paper.Margin,
	}
	for name, v := range fields {
		if v <= 0 {
			continue
		}
		if err := writer.WriteField(name, fmt.Sprintf("%.2f", v)); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("printBackground", "true"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("report: render failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return io.ReadAll(resp.Body)
}
