package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutriscan/internal/analysis"
	"nutriscan/internal/models"
	"nutriscan/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field string, image []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile(field, "meal.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/capture", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestCapture_FullFlow(t *testing.T) {
	f := newFixture(&stubAnalyzer{result: sampleScan()})

	rr := httptest.NewRecorder()
	f.cc.Analyze(rr, uploadRequest(t, "image", []byte("jpeg bytes")))
	require.Equal(t, http.StatusOK, rr.Code)

	var draft models.MealDraft
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draft))
	assert.Equal(t, "Chicken + Rice", draft.MealName)
	assert.Equal(t, "upload:meal.jpg", draft.ImageURL)
	require.Len(t, draft.DetectedFoods, 2)

	rr = httptest.NewRecorder()
	f.cc.AdjustWeight(rr, httptest.NewRequest(http.MethodPost, "/capture/weight", strings.NewReader(`{"index":0,"grams":150}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	f.cc.Draft(rr, httptest.NewRequest(http.MethodGet, "/capture", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	f.cc.Commit(rr, httptest.NewRequest(http.MethodPost, "/capture/commit", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	var rec models.MealRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.InDelta(t, 300+195, rec.Nutrition.Calories, 1e-9)
	assert.Len(t, f.store.GetMeals(), 1)
	assert.Equal(t, 2, f.session.Current().AnalysesRemaining)
}

func TestCapture_MissingImageField(t *testing.T) {
	f := newFixture(&stubAnalyzer{result: sampleScan()})
	rr := httptest.NewRecorder()
	f.cc.Analyze(rr, uploadRequest(t, "photo", []byte("jpeg")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCapture_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"timeout", analysis.ErrTimeout, http.StatusGatewayTimeout, true},
		{"unavailable", analysis.ErrUnavailable, http.StatusBadGateway, true},
		{"incomplete", analysis.ErrIncompleteData, http.StatusUnprocessableEntity, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&stubAnalyzer{err: tt.err})
			rr := httptest.NewRecorder()
			f.cc.Analyze(rr, uploadRequest(t, "image", []byte(tt.name)))

			assert.Equal(t, tt.status, rr.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.retryable, resp.Retryable)
			assert.Empty(t, f.store.GetMeals())
		})
	}
}

func TestCapture_LockedReturnsPaymentRequired(t *testing.T) {
	f := newFixture(&stubAnalyzer{result: sampleScan()})
	f.session.Login(false)
	for i := 0; i < 3; i++ {
		f.session.RecordAnalysisUsed()
	}

	rr := httptest.NewRecorder()
	f.cc.Analyze(rr, uploadRequest(t, "image", []byte("jpeg")))
	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
}

func TestCapture_NoDraft(t *testing.T) {
	f := newFixture(&stubAnalyzer{})

	rr := httptest.NewRecorder()
	f.cc.Commit(rr, httptest.NewRequest(http.MethodPost, "/capture/commit", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	f.cc.Draft(rr, httptest.NewRequest(http.MethodGet, "/capture", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCapture_AdjustWeightValidation(t *testing.T) {
	f := newFixture(&stubAnalyzer{result: sampleScan()})
	rr := httptest.NewRecorder()
	f.cc.Analyze(rr, uploadRequest(t, "image", []byte("jpeg")))
	require.Equal(t, http.StatusOK, rr.Code)

	for _, body := range []string{`{"index":0,"grams":0}`, `{"index":9,"grams":100}`, `{"index":0,"grams":-5}`} {
		rr = httptest.NewRecorder()
		f.cc.AdjustWeight(rr, httptest.NewRequest(http.MethodPost, "/capture/weight", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestCapture_CancelDropsDraft(t *testing.T) {
	f := newFixture(&stubAnalyzer{result: sampleScan()})
	rr := httptest.NewRecorder()
	f.cc.Analyze(rr, uploadRequest(t, "image", []byte("jpeg")))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	f.cc.Cancel(rr, httptest.NewRequest(http.MethodDelete, "/capture", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	f.cc.Commit(rr, httptest.NewRequest(http.MethodPost, "/capture/commit", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("capture: %w", services.ErrCaptureInFlight)))
	assert.Equal(t, http.StatusGone, statusFor(services.ErrCaptureAbandoned))
	assert.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("%w: status 500", analysis.ErrUnavailable)))
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrInvalidSubscription))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
