package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/apierr"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

const maxBodyBytes = 1 << 20 // 1 MB

// handlerFunc is an http.HandlerFunc that reports failures instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

// decodeBody reads a JSON body into dst and validates it with v.
func decodeBody(r *http.Request, v validator.Validator, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsgf("request body is required")
		}
		return apperr.ValidationErr.WithMsgf("invalid request body: %s", err.Error())
	}

	if err := v.Validate(dst); err != nil {
		return err
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return 0, &apierr.ParamError{ParamName: name, Err: err}
	}
	return id, nil
}

// bindQuery binds an optional form style query parameter into dst, which must be a pointer.
func bindQuery(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		return &apierr.ParamError{ParamName: name, Err: err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
