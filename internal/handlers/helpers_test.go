package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireUnmarshal(t *testing.T, body string, v any) {
	t.Helper()
	require.NoErrorf(t, json.Unmarshal([]byte(body), v), "body should be valid JSON: %s", body)
}
