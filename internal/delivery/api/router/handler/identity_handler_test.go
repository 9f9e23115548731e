package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/entity"
	mocksvc "storefront/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIdentityContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/identity", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestIdentityHandler_GetIdentity(t *testing.T) {
	provider := mocksvc.NewMockIdentityProvider(t)
	provider.EXPECT().GetOrCreateIdentity(mock.Anything).Return(entity.Identity("device-1"), nil)

	c, rec := newIdentityContext()
	require.NoError(t, NewIdentityHandler(provider).GetIdentity(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "device-1", body.Data["identity"])
}

func TestIdentityHandler_ProviderFailure(t *testing.T) {
	failure := errors.New("identity file is read-only")

	provider := mocksvc.NewMockIdentityProvider(t)
	provider.EXPECT().
		GetOrCreateIdentity(mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })).
		Return(entity.Identity(""), failure)

	c, _ := newIdentityContext()
	err := NewIdentityHandler(provider).GetIdentity(c)

	assert.ErrorIs(t, err, failure)
}
