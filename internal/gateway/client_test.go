package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vaultguard-client/internal/models"
	"vaultguard-client/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func newTestClient(t *testing.T, handler http.Handler, onAuthFailure func()) (*Client, *session.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := newTestStore(t)
	client := New(server.URL, 5*time.Second, store, onAuthFailure)
	return client, store, server
}

func TestAttachesCredential(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(models.ListAccountsResponse{})
	})

	client, store, _ := newTestClient(t, handler, nil)
	require.NoError(t, store.Set(session.Credential{Token: "tok-abc", Username: "alice"}))

	_, err := client.ListAccounts(1, 10)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestNoCredentialForAnonymousCalls(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.LoginUserResponse{AccessToken: "t"})
	})

	client, _, _ := newTestClient(t, handler, nil)
	_, err := client.LoginUser(models.LoginUserRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestUnauthorizedForcesLogoutOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid access token"})
	})

	var redirects int32
	client, store, _ := newTestClient(t, handler, func() {
		atomic.AddInt32(&redirects, 1)
	})
	require.NoError(t, store.Set(session.Credential{Token: "stale", Username: "alice"}))

	// Several requests fail at the same time; the session must end up
	// cleared and the login redirect must fire exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.ListAccounts(1, 10)
			require.Error(t, err)
		}()
	}
	wg.Wait()

	require.False(t, store.IsAuthenticated())
	require.Equal(t, int32(1), atomic.LoadInt32(&redirects))
}

// The backend sometimes answers 500 instead of 401 when the authorization
// header is missing or mangled. That shape is treated as an auth failure.
func TestServerErrorAuthHeuristic(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		message    string
		wantLogout bool
	}{
		{
			name:       "500 missing authorization header",
			status:     http.StatusInternalServerError,
			message:    "missing authorization header",
			wantLogout: true,
		},
		{
			name:       "500 invalid authorization header format",
			status:     http.StatusInternalServerError,
			message:    "invalid authorization header format",
			wantLogout: true,
		},
		{
			name:       "ordinary 500 stays a server error",
			status:     http.StatusInternalServerError,
			message:    "database connection lost",
			wantLogout: false,
		},
		{
			name:       "business 400 passes through",
			status:     http.StatusBadRequest,
			message:    "currency EUR is invalid",
			wantLogout: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]string{"message": tc.message})
			})

			redirected := false
			client, store, _ := newTestClient(t, handler, func() { redirected = true })
			require.NoError(t, store.Set(session.Credential{Token: "tok", Username: "bob"}))

			_, err := client.ListAccounts(1, 10)
			require.Error(t, err)

			require.Equal(t, tc.wantLogout, redirected)
			require.Equal(t, !tc.wantLogout, store.IsAuthenticated())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestRemoteMessageExtraction(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "account limit reached"})
	})

	client, _, _ := newTestClient(t, handler, nil)
	_, err := client.CreateAccount(models.USD)
	require.Error(t, err)
	require.Equal(t, "account limit reached", RemoteMessage(err))
}

func TestNetworkErrorIsWrapped(t *testing.T) {
	store := newTestStore(t)
	// Nothing listens here.
	client := New("http://127.0.0.1:1", 500*time.Millisecond, store, nil)

	_, err := client.ListAccounts(1, 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "network error")

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestSuccessfulTransferRoundTrip(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/transfers", r.URL.Path)

		var req models.CreateTransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, int64(5000), req.Amount)

		json.NewEncoder(w).Encode(models.CreateTransferResponse{
			Transfer: models.TransferRecord{
				ID:            99,
				FromAccountID: req.FromAccountID,
				ToAccountID:   req.ToAccountID,
				Amount:        req.Amount,
			},
		})
	})

	client, store, _ := newTestClient(t, handler, nil)
	require.NoError(t, store.Set(session.Credential{Token: "tok", Username: "alice"}))

	transfer, err := client.CreateTransfer(models.CreateTransferRequest{
		FromAccountID: 1, ToAccountID: 2, Amount: 5000, Currency: models.USD,
	})
	require.NoError(t, err)
	require.Equal(t, int64(99), transfer.ID)
}

func TestListTransfersQuery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		require.Equal(t, "7", query.Get("account_id"))
		require.Equal(t, "2", query.Get("page_id"))
		require.Equal(t, "10", query.Get("page_size"))
		json.NewEncoder(w).Encode(models.ListTransfersResponse{
			Transfers: []models.TransferRecord{{ID: 1}},
		})
	})

	client, store, _ := newTestClient(t, handler, nil)
	require.NoError(t, store.Set(session.Credential{Token: "tok", Username: "alice"}))

	transfers, err := client.ListTransfers(7, 2, 10)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
}
