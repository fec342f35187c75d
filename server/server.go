// Package server exposes the conversion pipeline over HTTP: one
// endpoint accepts a frame, runs detection (and OCR on request),
// evaluates a query, and returns the matching elements in the wire
// shape.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/screenpom/screenpom"
	"github.com/screenpom/screenpom/detect"
	"github.com/screenpom/screenpom/format"
	"github.com/screenpom/screenpom/model"
	"github.com/screenpom/screenpom/query"
)

// Reader recognizes text fragments in a frame.
type Reader interface {
	Fragments(image []byte) ([]model.Fragment, error)
}

// Server handles POM conversion requests.
type Server struct {
	detector detect.Detector
	reader   Reader
	logger   *log.Logger
}

// New creates a server. reader may be nil, in which case requests
// asking for OCR are rejected.
func New(detector detect.Detector, reader Reader, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{detector: detector, reader: reader, logger: logger}
}

// Routes returns the server's route table.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", s.handleConvert)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

type convertRequest struct {
	ImageBase64 string `json:"image_base64"`
	// OCR enables text recognition when non-null. Present for wire
	// compatibility as an object; its contents are currently unused.
	OCR map[string]any `json:"ocr"`
	// Query is the element query; null returns every element.
	Query map[string]any `json:"query"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Sprintf("Failed to decode request: %v", err), http.StatusBadRequest)
		return
	}

	frame, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		respondError(w, fmt.Sprintf("Failed to decode image: %v", err), http.StatusBadRequest)
		return
	}
	if format.Detect(frame) == format.Unknown {
		respondError(w, "Unrecognized image format", http.StatusBadRequest)
		return
	}

	detections, err := s.detector.Detect(r.Context(), frame)
	if err != nil {
		respondError(w, fmt.Sprintf("Failed to create POM: %v", err), http.StatusBadGateway)
		return
	}

	var pom *screenpom.POM
	if req.OCR != nil {
		if s.reader == nil {
			respondError(w, "OCR requested but not available", http.StatusBadRequest)
			return
		}
		fragments, err := s.reader.Fragments(frame)
		if err != nil {
			respondError(w, fmt.Sprintf("Failed to run OCR: %v", err), http.StatusBadGateway)
			return
		}
		pom = screenpom.ConvertWithOCR(detections, fragments)
	} else {
		pom = screenpom.Convert(detections)
	}

	elements, err := pom.GetElements(req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrMissingValue) || errors.Is(err, model.ErrInvalidSide) {
			status = http.StatusBadRequest
		}
		respondError(w, fmt.Sprintf("Failed to query elements: %v", err), status)
		return
	}

	if elements == nil {
		elements = model.Elements{}
	}
	s.logger.Printf("convert: %d detections, %d matched", len(detections), len(elements))
	respondJSON(w, elements, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
