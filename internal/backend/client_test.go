package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL})
}

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	var out struct{}
	require.NoError(t, client.WithToken("tok-123").Get(context.Background(), "/api/admin/users", nil, &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	var out struct{}
	require.NoError(t, client.Get(context.Background(), "/api/auth/login", nil, &out))
	assert.Empty(t, gotAuth)
}

func TestClient_MultipartSetsBoundaryContentType(t *testing.T) {
	var gotContentType string
	var gotFile []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotFile = buf[:n]
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	body := MultipartBody{
		Files:  []UploadFile{{Field: "image", Filename: "meal.jpg", Content: []byte("jpegdata")}},
		Fields: map[string]string{"alt": "meal"},
	}
	var out struct{}
	require.NoError(t, client.UploadFiles(context.Background(), "/api/admin/meals/1/image", body, &out))

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="), gotContentType)
	assert.Equal(t, []byte("jpegdata"), gotFile)
}

func TestClient_UnauthorizedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":""}`))
	})

	var out struct{}
	err := client.WithToken("stale").Get(context.Background(), "/api/admin/users", nil, &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Authentication required.", apperrors.UserMessage(err))
}

func TestAuthAPI_LoginRejectionReadsAsCredentialFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":""}`))
	})

	_, _, err := client.Auth().Login(context.Background(), ports.Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password.", apperrors.UserMessage(err))
}

func TestAuthAPI_LoginKeepsBackendRejectionMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Account is locked"}`))
	})

	_, _, err := client.Auth().Login(context.Background(), ports.Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Account is locked", apperrors.UserMessage(err))
}

func TestClient_UpstreamMessageSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"message":"Meal name already exists"}`))
	})

	err := client.Post(context.Background(), "/api/admin/meals", map[string]string{"name": "x"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "Meal name already exists", apperrors.UserMessage(err))
}

func TestClient_SuccessFalseEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// 200 with a success:false envelope still counts as a failure.
		w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
	})

	var out struct{}
	err := client.Get(context.Background(), "/api/admin/stats", nil, &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, "quota exceeded", apperrors.UserMessage(err))
}

func TestClient_NetworkErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	err := client.Get(context.Background(), "/api/admin/users", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err) || apperrors.IsTimeout(err))
}

func TestClient_TimeoutClassified(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := client.Get(ctx, "/api/admin/users", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestAuthAPI_LoginNormalizesShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "camelCase",
			payload: `{"success":true,"data":{"token":"tok","refreshToken":"ref","expiresIn":3600,"user":{"id":"7","name":"Ava","email":"ava@fitpick.io","roleId":4}}}`,
		},
		{
			name:    "PascalCase",
			payload: `{"Success":true,"Data":{"AccessToken":"tok","RefreshToken":"ref","ExpiresIn":3600,"User":{"Id":7,"Name":"Ava","Email":"ava@fitpick.io","RoleId":4}}}`,
		},
		{
			name:    "flat without envelope",
			payload: `{"token":"tok","refreshToken":"ref","expiresIn":3600,"id":"7","name":"Ava","email":"ava@fitpick.io","roleId":4}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				w.Write([]byte(tt.payload))
			})

			tokens, profile, err := client.Auth().Login(context.Background(), ports.Credentials{Email: "ava@fitpick.io", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, "tok", tokens.AccessToken)
			assert.Equal(t, "ref", tokens.RefreshToken)
			assert.Equal(t, 3600, tokens.ExpiresIn)
			assert.Equal(t, "ava@fitpick.io", profile.Email)
			assert.Equal(t, "7", profile.ID)
			assert.Equal(t, 4, profile.RoleID)
		})
	}
}

func TestUsersAPI_ListDecodesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "ava", r.URL.Query().Get("search"))
		w.Write([]byte(`{"success":true,"data":{"items":[{"id":"1","name":"Ava","email":"a@x.io"}],"totalItems":25,"totalPages":3,"pageSize":10,"pageNumber":2}}`))
	})

	page, err := client.Users().List(context.Background(), model.UserListOptions{
		ListOptions: model.ListOptions{Search: "ava", Page: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.PageNumber)
}

func TestTransactionsAPI_ListByUserPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/transactions/user/u-9", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"items":[],"totalItems":0,"totalPages":0,"pageSize":10,"pageNumber":1}}`))
	})

	_, err := client.Transactions().List(context.Background(), model.TransactionListOptions{UserID: "u-9"})
	require.NoError(t, err)
}

func TestFiltersAPI_OptionsNormalizesStringArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/filter/diet-types", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":["keto","vegan"]}`))
	})

	opts, err := client.Filters().Options(context.Background(), model.FilterKindDietTypes)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, model.FilterOption{Value: "keto", Label: "keto"}, opts[0])
}

func TestBlogsAPI_SetStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/blogs/b-1/status", r.URL.Path)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["status"])
		w.Write([]byte(`{"success":true,"data":{"id":"b-1","title":"Post","status":false}}`))
	})

	blog, err := client.Blogs().SetStatus(context.Background(), "b-1", false)
	require.NoError(t, err)
	assert.False(t, blog.Published)
}
