package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"optimasfibre-web/models"
	"optimasfibre-web/utils"
)

// APIClient talks to the Optimas REST backend. Every admin call carries the
// bearer token of the session that made it.
type APIClient struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewAPIClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Download is a file produced by the backend (PDF or Excel export). The
// caller must close Body.
type Download struct {
	ContentType string
	Filename    string
	Size        int64
	Body        io.ReadCloser
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Login exchanges admin credentials for a backend token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "Login response did not include a token"}
	}
	return out.Token, nil
}

// Blog

func (c *APIClient) ListBlog(ctx context.Context, token string) ([]models.BlogPost, error) {
	return list[models.BlogPost](ctx, c, "/api/blog", token)
}

// ListPublicBlog fetches published posts without a token, for the public site.
func (c *APIClient) ListPublicBlog(ctx context.Context) ([]models.BlogPost, error) {
	var out []models.BlogPost
	err := c.send(ctx, http.MethodGet, "/api/blog", "", nil, collection(&out))
	return orEmpty(out), err
}

func (c *APIClient) CreateBlog(ctx context.Context, token string, p *models.BlogPost) (*models.BlogPost, error) {
	return one[models.BlogPost](ctx, c, http.MethodPost, "/api/blog", token, p)
}

func (c *APIClient) UpdateBlog(ctx context.Context, token, id string, p *models.BlogPost) (*models.BlogPost, error) {
	return one[models.BlogPost](ctx, c, http.MethodPut, "/api/blog/"+url.PathEscape(id), token, p)
}

func (c *APIClient) DeleteBlog(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/api/blog/"+url.PathEscape(id), token, nil, nil)
}

// Portfolio

func (c *APIClient) ListPortfolio(ctx context.Context, token string) ([]models.PortfolioItem, error) {
	return list[models.PortfolioItem](ctx, c, "/api/portfolio", token)
}

func (c *APIClient) ListPublicPortfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	err := c.send(ctx, http.MethodGet, "/api/portfolio", "", nil, collection(&out))
	return orEmpty(out), err
}

func (c *APIClient) CreatePortfolio(ctx context.Context, token string, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	return one[models.PortfolioItem](ctx, c, http.MethodPost, "/api/portfolio", token, p)
}

func (c *APIClient) UpdatePortfolio(ctx context.Context, token, id string, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	return one[models.PortfolioItem](ctx, c, http.MethodPut, "/api/portfolio/"+url.PathEscape(id), token, p)
}

func (c *APIClient) DeletePortfolio(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/api/portfolio/"+url.PathEscape(id), token, nil, nil)
}

// Invoices

func (c *APIClient) ListInvoices(ctx context.Context, token string) ([]models.Invoice, error) {
	return list[models.Invoice](ctx, c, "/api/invoices", token)
}

func (c *APIClient) GetInvoice(ctx context.Context, token, id string) (*models.Invoice, error) {
	return one[models.Invoice](ctx, c, http.MethodGet, invoicePath(id), token, nil)
}

func (c *APIClient) CreateInvoice(ctx context.Context, token string, inv *models.Invoice) (*models.Invoice, error) {
	return one[models.Invoice](ctx, c, http.MethodPost, "/api/invoices", token, inv)
}

func (c *APIClient) UpdateInvoice(ctx context.Context, token, id string, inv *models.Invoice) (*models.Invoice, error) {
	return one[models.Invoice](ctx, c, http.MethodPut, invoicePath(id), token, inv)
}

func (c *APIClient) DeleteInvoice(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, invoicePath(id), token, nil, nil)
}

func (c *APIClient) SetInvoiceStatus(ctx context.Context, token, id string, status models.InvoiceStatus) (*models.Invoice, error) {
	body := map[string]models.InvoiceStatus{"status": status}
	return one[models.Invoice](ctx, c, http.MethodPatch, invoicePath(id)+"/status", token, body)
}

// SendInvoice asks the backend to email the invoice to the customer.
func (c *APIClient) SendInvoice(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodPost, invoicePath(id)+"/send", token, nil, nil)
}

// ExportInvoice downloads the backend's rendering of an invoice; format is
// "pdf" or "excel".
func (c *APIClient) ExportInvoice(ctx context.Context, token, id, format string) (*Download, error) {
	return c.download(ctx, invoicePath(id)+"/export/"+format, token)
}

// Receipts

func (c *APIClient) ListReceipts(ctx context.Context, token string) ([]models.Receipt, error) {
	return list[models.Receipt](ctx, c, "/api/receipts", token)
}

func (c *APIClient) GetReceipt(ctx context.Context, token, id string) (*models.Receipt, error) {
	return one[models.Receipt](ctx, c, http.MethodGet, receiptPath(id), token, nil)
}

func (c *APIClient) CreateReceipt(ctx context.Context, token string, r *models.Receipt) (*models.Receipt, error) {
	return one[models.Receipt](ctx, c, http.MethodPost, "/api/receipts", token, r)
}

func (c *APIClient) UpdateReceipt(ctx context.Context, token, id string, r *models.Receipt) (*models.Receipt, error) {
	return one[models.Receipt](ctx, c, http.MethodPut, receiptPath(id), token, r)
}

func (c *APIClient) DeleteReceipt(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, receiptPath(id), token, nil, nil)
}

func (c *APIClient) SendReceipt(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodPost, receiptPath(id)+"/send", token, nil, nil)
}

func (c *APIClient) ExportReceiptPDF(ctx context.Context, token, id string) (*Download, error) {
	return c.download(ctx, receiptPath(id)+"/export/pdf", token)
}

// Stats and settings

func (c *APIClient) GetStats(ctx context.Context, token string) (models.Stats, error) {
	var out models.Stats
	err := c.authed(ctx, http.MethodGet, "/api/stats", token, nil, &out)
	return out, err
}

func (c *APIClient) GetSettings(ctx context.Context, token string) (models.Settings, error) {
	var out models.Settings
	err := c.authed(ctx, http.MethodGet, "/api/settings", token, nil, &out)
	return out, err
}

func (c *APIClient) UpdateSettings(ctx context.Context, token string, s models.Settings) (models.Settings, error) {
	var out models.Settings
	err := c.authed(ctx, http.MethodPut, "/api/settings", token, s, &out)
	return out, err
}

func invoicePath(id string) string { return "/api/invoices/" + url.PathEscape(id) }

func receiptPath(id string) string { return "/api/receipts/" + url.PathEscape(id) }

func list[T any](ctx context.Context, c *APIClient, path, token string) ([]T, error) {
	var out []T
	if err := c.authed(ctx, http.MethodGet, path, token, nil, collection(&out)); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func one[T any](ctx context.Context, c *APIClient, method, path, token string, in any) (*T, error) {
	var out T
	if err := c.authed(ctx, method, path, token, in, envelope(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// authed refuses to issue a request without a live token.
func (c *APIClient) authed(ctx context.Context, method, path, token string, in, out any) error {
	if err := c.checkToken(token); err != nil {
		return err
	}
	return c.send(ctx, method, path, token, in, out)
}

func (c *APIClient) checkToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}
	if utils.TokenExpired(token, c.now()) {
		return ErrTokenExpired
	}
	return nil
}

func (c *APIClient) newRequest(ctx context.Context, method, path, token string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *APIClient) send(ctx context.Context, method, path, token string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, token, in)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromBody(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *APIClient) download(ctx context.Context, path, token string) (*Download, error) {
	if err := c.checkToken(token); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, errorFromBody(resp.StatusCode, data)
	}

	d := &Download{
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Body:        resp.Body,
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			d.Filename = params["filename"]
		}
	}
	if d.ContentType == "" {
		d.ContentType = "application/octet-stream"
	}
	return d, nil
}

// errorFromBody prefers the backend's own message and falls back to a
// generic one.
func errorFromBody(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = body.Message
		if msg == "" {
			msg = body.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &APIError{Status: status, Message: msg}
}

// collection decodes either a bare JSON array or an object wrapping one
// (under "data", "items", or any single array field).
type collectionDecoder struct{ out any }

func collection(out any) *collectionDecoder { return &collectionDecoder{out: out} }

func (d *collectionDecoder) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, d.out)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, key := range []string{"data", "items", "results"} {
		if raw, ok := obj[key]; ok && isArray(raw) {
			return json.Unmarshal(raw, d.out)
		}
	}
	for _, raw := range obj {
		if isArray(raw) {
			return json.Unmarshal(raw, d.out)
		}
	}
	return nil
}

// envelope decodes a single resource, unwrapping {"data": {...}} when present.
type envelopeDecoder struct{ out any }

func envelope(out any) *envelopeDecoder { return &envelopeDecoder{out: out} }

func (d *envelopeDecoder) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		if raw, ok := obj["data"]; ok && isObject(raw) {
			return json.Unmarshal(raw, d.out)
		}
	}
	return json.Unmarshal(data, d.out)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
