package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/santaworkshop/internal/api/apierr"
)

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeValid(t *testing.T) {
	var req MoveRequest
	require.NoError(t, Decode(newRequest(`{"direction":"left"}`), &req))
	assert.Equal(t, "left", req.Direction)
}

func TestDecodeMalformedBody(t *testing.T) {
	var req MoveRequest
	err := Decode(newRequest(`{"direction":`), &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierr.Status(err))
}

func TestDecodeReportsJSONFieldNames(t *testing.T) {
	var req MoveRequest
	err := Decode(newRequest(`{"direction":"sideways"}`), &req)
	require.Error(t, err)
	assert.Equal(t, "direction must be one of: up down left right", err.Error())
}

func TestDecodeEmptyBodyRunsValidation(t *testing.T) {
	var req AddProfileRequest
	err := Decode(newRequest(``), &req)
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestDecodePlanRequest(t *testing.T) {
	var req PlanRequest
	err := Decode(newRequest(`{"behavior_score":7,"wishlist":[{"price":"10"}]}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "behavior_score must be at most 5")
	assert.Contains(t, err.Error(), "name is required")
}
