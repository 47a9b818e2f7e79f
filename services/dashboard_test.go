package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardBackend map[string]func(w http.ResponseWriter)

func (b dashboardBackend) handler(w http.ResponseWriter, r *http.Request) {
	if h, ok := b[r.URL.Path]; ok {
		h(w)
		return
	}
	switch r.URL.Path {
	case "/api/stats", "/api/settings":
		w.Write([]byte(`{}`))
	default:
		w.Write([]byte(`[]`))
	}
}

func respond(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestDashboardLoadWithoutTokenMakesNoRequests(t *testing.T) {
	client, hits := newBackend(t, dashboardBackend{}.handler)
	loader := NewDashboardLoader(client)

	_, err := loader.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = loader.Load(context.Background(), signedToken(t, time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrTokenExpired)

	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestDashboardLoadsEverything(t *testing.T) {
	backend := dashboardBackend{
		"/api/blog":      respond(200, `[{"_id":"b1","title":"Fibre in Kilimani"}]`),
		"/api/portfolio": respond(200, `{"data":[{"_id":"p1","title":"Office fit-out"}]}`),
		"/api/invoices":  respond(200, `[{"_id":"i1","invoiceNumber":""},{"_id":"i2","invoiceNumber":"INV-900"}]`),
		"/api/receipts":  respond(200, `[{"_id":"r1"}]`),
		"/api/stats":     respond(200, `{"customers":12}`),
		"/api/settings":  respond(200, `{"companyName":"Optimas Fibre"}`),
	}
	client, hits := newBackend(t, backend.handler)

	data, err := NewDashboardLoader(client).Load(context.Background(), "static-token")
	require.NoError(t, err)

	assert.Len(t, data.Blog, 1)
	assert.Len(t, data.Portfolio, 1)
	require.Len(t, data.Invoices, 2)
	assert.Equal(t, "INV-001", data.Invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-900", data.Invoices[1].InvoiceNumber)
	assert.Equal(t, "RCP-001", data.Receipts[0].ReceiptNumber)
	assert.EqualValues(t, 12, data.Stats["customers"])
	assert.Equal(t, "Optimas Fibre", data.Settings["companyName"])
	assert.Empty(t, data.Warnings)
	assert.EqualValues(t, 6, atomic.LoadInt32(hits))
}

func TestDashboardBlogFailureIsFatal(t *testing.T) {
	client, _ := newBackend(t, dashboardBackend{
		"/api/blog": respond(500, `{"message":"database offline"}`),
	}.handler)

	_, err := NewDashboardLoader(client).Load(context.Background(), "static-token")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "database offline", apiErr.Message)
}

func TestDashboardDegradesOnSecondaryFailure(t *testing.T) {
	client, _ := newBackend(t, dashboardBackend{
		"/api/portfolio": respond(500, `{"message":"boom"}`),
		"/api/stats":     respond(404, ``),
	}.handler)

	data, err := NewDashboardLoader(client).Load(context.Background(), "static-token")
	require.NoError(t, err)

	assert.NotNil(t, data.Portfolio)
	assert.Empty(t, data.Portfolio)
	assert.NotNil(t, data.Stats)
	assert.Len(t, data.Warnings, 2)
}

func TestDashboardUnauthorizedIsFatal(t *testing.T) {
	client, _ := newBackend(t, dashboardBackend{
		"/api/receipts": respond(401, `{"message":"jwt expired"}`),
	}.handler)

	_, err := NewDashboardLoader(client).Load(context.Background(), "static-token")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}
