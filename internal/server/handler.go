package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/llm"
	"github.com/toppers/mocktest/internal/logging"
	"github.com/toppers/mocktest/internal/mcqtest"
)

// maxBodyBytes caps request bodies; both requests are a handful of fields.
const maxBodyBytes = 64 << 10

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.model,
	})
}

func (s *Server) generateTest(w http.ResponseWriter, r *http.Request) {
	var req mcqtest.Request
	if err := decodeBody(r, &req, nil); err != nil {
		s.writeError(w, r, err)
		return
	}

	test, err := s.tests.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).WithFields(logrus.Fields{
		"test_id":   test.ID,
		"questions": len(test.Questions),
	}).Info("test generated")
	writeJSON(w, http.StatusOK, test.Questions)
}

func (s *Server) generateFeedback(w http.ResponseWriter, r *http.Request) {
	// Every performance field is required; a missing one must not decode
	// to zero.
	var req feedback.Request
	if err := decodeBody(r, &req, feedback.RequestSchema); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.feedback.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// errBadRequest marks a body that could not be decoded.
type errBadRequest struct {
	err error
}

func (e *errBadRequest) Error() string { return "invalid request body: " + e.err.Error() }

func (e *errBadRequest) Unwrap() error { return e.err }

// decodeBody decodes the JSON body into v. A non-nil schema is checked
// against the raw body first, so required fields are enforced before
// absent values become zero.
func decodeBody(r *http.Request, v any, schema *llm.Schema) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return &errBadRequest{err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return &errBadRequest{err: err}
	}
	if dec.More() {
		return &errBadRequest{err: errors.New("trailing data after JSON object")}
	}

	if err := llm.ValidateJSON(schema, raw); err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			err = invalid.Err
		}
		return &errBadRequest{err: err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	entry := logging.FromContext(r.Context()).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
