package swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHandler(t *testing.T) {
	h, err := GetHandler()
	require.NoError(t, err)

	testCases := []struct {
		path     string
		contains string
	}{
		{path: "/openapi.yaml", contains: "openapi: 3.0.3"},
		{path: "/", contains: "swagger-ui"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.contains)
		})
	}
}
