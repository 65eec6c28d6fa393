package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	body := map[string]string{"error": p.ErrCode, "message": p.Err.Error()}
	if field := apperrors.GetField(p.Err); field != "" {
		body["field"] = field
	}
	WriteJSON(w, p.Code, body)
}

// WriteAppError maps an application error to its HTTP status and writes it.
// Unclassified errors are reported as 500 with a generic message so internal
// detail never reaches the client.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status, ok := statusForCode[code]
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     apperrors.Internal(apperrors.UserMessage(err)),
		})
		return
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Err: err})
}

var statusForCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:       http.StatusNotFound,
	apperrors.ErrCodeValidation:     http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized:   http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:      http.StatusForbidden,
	apperrors.ErrCodeSessionExpired: http.StatusUnauthorized,
	apperrors.ErrCodeUpstream:       http.StatusBadGateway,
	apperrors.ErrCodeNetwork:        http.StatusBadGateway,
	apperrors.ErrCodeTimeout:        http.StatusGatewayTimeout,
}
