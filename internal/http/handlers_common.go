package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/fitpick/admin-gateway/internal/backend"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/listview"
)

// DeleteConfirmation is the literal a destructive request must carry.
const DeleteConfirmation = "DELETE"

// backendFor returns the backend client bound to the request's session
// token. Handlers behind RequireAuth always find a session in context.
func backendFor(r *http.Request, base *backend.Client) *backend.Client {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		return base.WithToken(sess.AccessToken)
	}
	return base
}

// confirmDelete verifies the destructive-action confirmation: the literal
// "DELETE", case-sensitive, in the confirm query parameter or a
// {"confirm": "DELETE"} body. On failure it writes the error and returns
// false.
func confirmDelete(w http.ResponseWriter, r *http.Request) bool {
	confirm := r.URL.Query().Get("confirm")
	if confirm == "" && r.ContentLength > 0 {
		var body struct {
			Confirm string `json:"confirm"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			confirm = body.Confirm
		}
	}
	if confirm != DeleteConfirmation {
		WriteAppError(w, apperrors.ValidationField("confirm",
			`deletion requires confirm to be exactly "DELETE"`))
		return false
	}
	return true
}

// listQuery parses the shared list parameters from the request.
func listQuery(r *http.Request) listview.Query {
	return listview.FromValues(r.URL.Query())
}

// pathID extracts the {id} path value, writing a validation error when it
// is empty.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteAppError(w, apperrors.ValidationField("id", "id is required"))
		return "", false
	}
	return id, true
}
