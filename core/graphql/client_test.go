package graphql

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "https://demo.myshopify.com/admin/api/2024-10/graphql.json", Endpoint("demo.myshopify.com", "2024-10"))
	assert.Equal(t, "http://127.0.0.1:9000/admin/api/2024-10/graphql.json", Endpoint("http://127.0.0.1:9000/", "2024-10"))
}

func TestNewClient_Validation(t *testing.T) {
	httpClient := NewHTTPClient(Config{})

	_, err := NewClient(httpClient, Config{}, "", "token")
	assert.Error(t, err)

	_, err = NewClient(httpClient, Config{}, "demo.myshopify.com", "")
	assert.Error(t, err)

	_, err = NewClient(nil, Config{}, "demo.myshopify.com", "token")
	assert.Error(t, err)
}

func TestHTTPClient_ReusesConnections(t *testing.T) {
	var conns int32
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"shop":{"id":"gid://shopify/Shop/1"}}}`))
	}))
	srv.Config.ConnState = func(_ net.Conn, state http.ConnState) {
		if state == http.StateNew {
			atomic.AddInt32(&conns, 1)
		}
	}
	srv.Start()
	defer srv.Close()

	httpClient := NewHTTPClient(Config{})
	for i := 0; i < 20; i++ {
		client, err := NewClient(httpClient, Config{}, srv.URL, "token")
		require.NoError(t, err)
		_, err = client.Do(context.Background(), "query { shop { id } }", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&conns))
}

func TestHTTPClient_Do(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/graphql.json", r.URL.Path)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"shop":{"id":"gid://shopify/Shop/1"}}}`))
	}))
	defer srv.Close()

	client, err := NewClient(NewHTTPClient(Config{}), Config{APIVersion: "2024-10"}, srv.URL, "shpat_test")
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), "query { shop { id } }", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Errors)

	var data struct {
		Shop struct {
			ID string `json:"id"`
		} `json:"shop"`
	}
	require.NoError(t, resp.Decode(&data))
	assert.Equal(t, "gid://shopify/Shop/1", data.Shop.ID)
	assert.Equal(t, "query { shop { id } }", gotBody["query"])
	assert.Equal(t, map[string]any{"a": float64(1)}, gotBody["variables"])
}

func TestHTTPClient_Do_GraphErrorsAreNotTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(NewHTTPClient(Config{}), Config{}, srv.URL, "token")
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), "query { shop { id } }", nil)
	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Throttled", resp.Errors[0].Message)
	assert.Error(t, resp.Decode(&struct{}{}))
}

func TestHTTPClient_Do_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`[API] Invalid API key or access token`))
	}))
	defer srv.Close()

	client, err := NewClient(NewHTTPClient(Config{}), Config{}, srv.URL, "token")
	require.NoError(t, err)

	_, err = client.Do(context.Background(), "query { shop { id } }", nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "Invalid API key")
}

func TestHTTPClient_Do_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(NewHTTPClient(Config{}), Config{}, url, "token")
	require.NoError(t, err)

	_, err = client.Do(context.Background(), "query { shop { id } }", nil)
	assert.Error(t, err)
}
