package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUserID(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)
	r.Header.Set(UserIDHeader, "64f0c2a7e13d5a0001a3b9c1")

	id, err := ExtractUserID(r)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2a7e13d5a0001a3b9c1", id)
}

func TestExtractUserIDMissing(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)

	_, err := ExtractUserID(r)
	require.Error(t, err)
}

func TestExtractPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings?from=20&size=5", nil)

	from, size, err := ExtractPage(r)
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, size)
	assert.Equal(t, 20, *from)
	assert.Equal(t, 5, *size)
}

func TestExtractPageAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings", nil)

	from, size, err := ExtractPage(r)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, size)
}

func TestExtractPagePartial(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings?from=3", nil)

	from, size, err := ExtractPage(r)
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, 3, *from)
	assert.Nil(t, size)
}

func TestExtractPageMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings?from=abc&size=5", nil)

	_, _, err := ExtractPage(r)
	require.Error(t, err)
}
