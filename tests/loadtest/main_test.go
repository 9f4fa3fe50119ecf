package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndpointReport_Quantiles(t *testing.T) {
	rep := &endpointReport{}
	for i := 1; i <= 100; i++ {
		rep.latencies = append(rep.latencies, time.Duration(i)*time.Millisecond)
	}

	assert.Equal(t, 51*time.Millisecond, rep.quantile(0.50))
	assert.Equal(t, 100*time.Millisecond, rep.quantile(0.99))
	assert.Equal(t, 100*time.Millisecond, rep.quantile(1))
	assert.Equal(t, 50500*time.Microsecond, rep.mean())
}

func TestEndpointReport_Empty(t *testing.T) {
	rep := &endpointReport{}
	assert.Zero(t, rep.quantile(0.95))
	assert.Zero(t, rep.mean())
}

func TestTimed_FlagsUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	s := timed("GET /x", http.StatusOK, func() (*http.Response, error) { return httpClient.Get(srv.URL) })
	assert.Equal(t, "GET /x", s.endpoint)
	assert.True(t, s.failed)

	s = timed("GET /x", http.StatusTeapot, func() (*http.Response, error) { return httpClient.Get(srv.URL) })
	assert.False(t, s.failed)
}
