package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewportJSON = `{
	"status": "OK",
	"results": [{
		"geometry": {
			"viewport": {
				"northeast": {"lat": 34.1139, "lng": -118.3879},
				"southwest": {"lat": 34.0733, "lng": -118.4434}
			}
		}
	}]
}`

func TestViewport_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "90210", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, viewportJSON)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	box, err := c.Viewport(context.Background(), "90210")
	require.NoError(t, err)

	assert.Greater(t, box.North, box.South)
	assert.Greater(t, box.East, box.West)
	assert.InDelta(t, 34.1139, box.North, 1e-6)
	assert.InDelta(t, -118.4434, box.West, 1e-6)
	require.NoError(t, box.Validate())
}

func TestViewport_ZeroResultsRetriesWithCountry(t *testing.T) {
	var addresses []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addresses = append(addresses, r.URL.Query().Get("address"))
		if len(addresses) == 1 {
			fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
			return
		}
		fmt.Fprint(w, viewportJSON)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	box, err := c.Viewport(context.Background(), "10001")
	require.NoError(t, err)
	require.NoError(t, box.Validate())

	// Exactly two outbound requests; second carries the country qualifier.
	require.Len(t, addresses, 2)
	assert.Equal(t, "10001", addresses[0])
	assert.Equal(t, "10001, USA", addresses[1])
}

func TestViewport_ZeroResultsTwiceIsStatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Viewport(context.Background(), "nowhere")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "ZERO_RESULTS", statusErr.Status)
	assert.Equal(t, 2, calls) // single built-in retry, no more
}

func TestViewport_RequestDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"key invalid","results":[]}`)
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := c.Viewport(context.Background(), "90210")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "REQUEST_DENIED", statusErr.Status)
	assert.Contains(t, statusErr.Error(), "key invalid")
}

func TestViewport_CustomCountry(t *testing.T) {
	var addresses []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addresses = append(addresses, r.URL.Query().Get("address"))
		if len(addresses) == 1 {
			fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
			return
		}
		fmt.Fprint(w, viewportJSON)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithCountry("India"))
	_, err := c.Viewport(context.Background(), "560001")
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "560001, India", addresses[1])
}

func TestViewport_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Viewport(context.Background(), "90210")
	assert.Error(t, err)
}
