package controllers

import (
	"fmt"
	"io"
	"net/http"
	"nutriscan/internal/providers"
	"nutriscan/internal/services"
)

const maxImageSize = 10 << 20 // 10 MB

type CaptureController struct {
	logger  providers.Logger
	capture services.CaptureServiceInterface
}

func NewCaptureController(logger providers.Logger, capture services.CaptureServiceInterface) *CaptureController {
	return &CaptureController{
		logger:  logger,
		capture: capture,
	}
}

type weightRequest struct {
	Index int     `json:"index" validate:"min:0"`
	Grams float64 `json:"grams" validate:"required|gt:0"`
}

func (cc *CaptureController) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, fmt.Errorf("%w: %s", errBadRequest, err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil || len(image) == 0 {
		writeError(w, errBadRequest)
		return
	}

	imageRef := r.FormValue("imageRef")
	if imageRef == "" {
		imageRef = "upload:" + header.Filename
	}

	draft, err := cc.capture.Analyze(r.Context(), image, imageRef)
	if err != nil {
		cc.logger.Warnf(providers.TypeAPI, "Capture failed: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (cc *CaptureController) Draft(w http.ResponseWriter, r *http.Request) {
	draft, err := cc.capture.Draft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (cc *CaptureController) Cancel(w http.ResponseWriter, r *http.Request) {
	cc.capture.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (cc *CaptureController) AdjustWeight(w http.ResponseWriter, r *http.Request) {
	var payload weightRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	draft, err := cc.capture.AdjustWeight(payload.Index, payload.Grams)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (cc *CaptureController) Commit(w http.ResponseWriter, r *http.Request) {
	record, err := cc.capture.Commit()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}
