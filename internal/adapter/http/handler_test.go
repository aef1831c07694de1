package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"

	"launchpad/internal/adapter/memory"
	"launchpad/internal/adapter/usecase"
)

const (
	testOwner       = "0x1111111111111111111111111111111111111111"
	testContributor = "0x2222222222222222222222222222222222222222"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := usecase.NewProjectUseCase(memory.NewProjectRepository())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandler(svc, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, url string, body any) (int, testEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func createBody(name, symbol string) map[string]any {
	return map[string]any{
		"name":            name,
		"description":     "community token sale",
		"tokenSymbol":     symbol,
		"totalSupply":     1_000_000,
		"initialPrice":    100,
		"minContribution": 10,
		"maxContribution": 100,
		"startTime":       "2026-01-01T00:00:00Z",
		"endTime":         "2026-02-01T00:00:00Z",
		"ownerAddress":    testOwner,
	}
}

func createProject(t *testing.T, srv *httptest.Server, name, symbol string) projectResponse {
	t.Helper()
	status, env := doJSON(t, http.MethodPost, srv.URL+"/", createBody(name, symbol))
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var p projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreateProjectEndpoint(t *testing.T) {
	srv := newTestServer(t)

	p := createProject(t, srv, "Aurora", "AUR")
	require.NotEmpty(t, p.ID)
	require.Equal(t, "pending", p.Status)
	require.NotNil(t, p.Contributions)
	require.Empty(t, p.Contributions)
}

func TestCreateProjectValidationError(t *testing.T) {
	srv := newTestServer(t)

	body := createBody("Aurora", "AUR")
	body["ownerAddress"] = "nope"
	status, env := doJSON(t, http.MethodPost, srv.URL+"/", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCreateProjectDuplicate(t *testing.T) {
	srv := newTestServer(t)

	createProject(t, srv, "Aurora", "AUR")
	status, env := doJSON(t, http.MethodPost, srv.URL+"/", createBody("Aurora", "AUR2"))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "DUPLICATE_PROJECT", env.Error.Code)
}

func TestGetProjectEndpoint(t *testing.T) {
	srv := newTestServer(t)
	p := createProject(t, srv, "Aurora", "AUR")

	status, env := doJSON(t, http.MethodGet, srv.URL+"/"+p.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "PROJECT_NOT_FOUND", env.Error.Code)
	require.Equal(t, "Project not found", env.Error.Message)
}

func TestListActiveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	a := createProject(t, srv, "Aurora", "AUR")
	createProject(t, srv, "Basalt", "BSLT")

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/"+a.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/", nil)
	require.Equal(t, http.StatusOK, status)

	var list []projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, "active", list[0].Status)
}

func TestContributeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	p := createProject(t, srv, "Aurora", "AUR")

	contribute := func(amount int64) (int, testEnvelope) {
		return doJSON(t, http.MethodPost, srv.URL+"/"+p.ID+"/contribute", map[string]any{
			"contributorAddress": testContributor,
			"amount":             amount,
		})
	}

	// pending project rejects contributions
	status, env := contribute(50)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "PROJECT_NOT_ACTIVE", env.Error.Code)
	require.Equal(t, "Project is not active", env.Error.Message)

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/"+p.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, status)

	status, env = contribute(5)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "INVALID_CONTRIBUTION_AMOUNT", env.Error.Code)
	require.Contains(t, env.Error.Message, "at least 10")

	status, env = contribute(500)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "INVALID_CONTRIBUTION_AMOUNT", env.Error.Code)
	require.Contains(t, env.Error.Message, "cannot exceed 100")

	status, env = contribute(50)
	require.Equal(t, http.StatusOK, status)
	var got projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Contributions, 1)
	require.Equal(t, int64(50), got.Contributions[0].Amount)
	require.Equal(t, testContributor, got.Contributions[0].ContributorAddress)

	// unknown project id
	status, env = doJSON(t, http.MethodPost, srv.URL+"/missing/contribute", map[string]any{
		"contributorAddress": testContributor,
		"amount":             50,
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "PROJECT_NOT_FOUND", env.Error.Code)
}

func TestEndProjectEndpoint(t *testing.T) {
	srv := newTestServer(t)
	p := createProject(t, srv, "Aurora", "AUR")

	endURL := fmt.Sprintf("%s/%s/end", srv.URL, p.ID)

	// pending cannot end
	status, env := doJSON(t, http.MethodPost, endURL, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "PROJECT_NOT_ACTIVE", env.Error.Code)

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/"+p.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, http.MethodPost, endURL, nil)
	require.Equal(t, http.StatusOK, status)
	var got projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "ended", got.Status)

	// second end sees the terminal status
	status, env = doJSON(t, http.MethodPost, endURL, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "PROJECT_NOT_ACTIVE", env.Error.Code)
}

func TestCancelProjectEndpoint(t *testing.T) {
	srv := newTestServer(t)
	p := createProject(t, srv, "Aurora", "AUR")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/"+p.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	var got projectResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, "cancelled", got.Status)

	status, env = doJSON(t, http.MethodPost, srv.URL+"/"+p.ID+"/activate", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "PROJECT_NOT_ACTIVE", env.Error.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
