package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bloglist/internal/common"
)

const (
	msgTokenInvalid     = "token invalid"
	msgCannotDelete     = "unable to delete this post"
	msgCannotUpdate     = "unable to update this post"
	msgBadCredentials   = "invalid username or password"
	msgMalformedBody    = "malformed request body"
	msgInternal         = "internal error"
	msgArchiveDisabled  = "report archive is not configured"
	maxRequestBodyBytes = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgMalformedBody)
		return false
	}
	return true
}

// bearerToken extracts the token from "Authorization: bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get(common.AuthorizationHeader)), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// fail maps a service error to a response. forbiddenMsg is reported when
// the caller is identified but does not own the resource.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg string) {
	var vErr *common.ValidationError
	var cErr *common.ConflictError

	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &cErr):
		writeError(w, http.StatusBadRequest, cErr.Message)
	case errors.Is(err, common.ErrorNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, msgTokenInvalid)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, forbiddenMsg)
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
