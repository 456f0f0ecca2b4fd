package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresenceRegistry struct {
	online []kernel.UUID
}

func (f *fakePresenceRegistry) IsOnline(providerID kernel.UUID) bool {
	for _, id := range f.online {
		if id.IsEqual(providerID) {
			return true
		}
	}
	return false
}

func (f *fakePresenceRegistry) Online() []kernel.UUID {
	return f.online
}

func TestServer_GetOnlineProviders(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()
	server := &Server{presence: &fakePresenceRegistry{online: []kernel.UUID{first, second}}}

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/providers/online", nil)
	recorder := httptest.NewRecorder()

	require.NoError(t, server.GetOnlineProviders(e.NewContext(request, recorder)))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		ProviderIDs []string `json:"providerIds"`
		Count       int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.ElementsMatch(t, []string{first.String(), second.String()}, body.ProviderIDs)
}

func TestServer_GetOnlineProviders_EmptyRegistry(t *testing.T) {
	server := &Server{presence: &fakePresenceRegistry{}}

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/providers/online", nil)
	recorder := httptest.NewRecorder()

	require.NoError(t, server.GetOnlineProviders(e.NewContext(request, recorder)))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		ProviderIDs []string `json:"providerIds"`
		Count       int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Zero(t, body.Count)
	assert.Empty(t, body.ProviderIDs)
}
