package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReqByObjJSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))

		var input map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "value", input["key"])

		w.Write([]byte(`{"answer": 42}`))
	}))
	defer server.Close()

	var output struct {
		Answer int `json:"answer"`
	}
	_, err := ReqByObjJSON("POST", server.URL, "secret-token", map[string]string{"key": "value"}, &output)
	assert.NoError(t, err)
	assert.Equal(t, 42, output.Answer)
}

func TestReqByObjJSONErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	body, err := ReqByObjJSON("POST", server.URL, "", nil, nil)
	assert.Error(t, err)
	assert.Contains(t, string(body), "bad credentials")
	httpErr, ok := err.(HTTPErr)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestPsuUUIDUnique(t *testing.T) {
	first, err := PsuUUID()
	assert.NoError(t, err)
	second, err := PsuUUID()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.NotEmpty(t, first)
}
