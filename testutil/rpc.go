package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/stretchr/testify/require"
)

// MockJSONRPC starts a JSON-RPC server that replays canned responses in
// the order the client calls it. Each response may be a bare result
// (it gets wrapped in a jsonrpc envelope) or a full envelope starting
// with {"jsonrpc". Pass a single string or a []string.
func MockJSONRPC(t require.TestingT, responses interface{}) (*httptest.Server, func()) {
	var queue []string
	switch typed := responses.(type) {
	case string:
		queue = []string{typed}
	case []string:
		queue = typed
	default:
		bz, err := json.Marshal(typed)
		require.NoError(t, err)
		queue = []string{string(bz)}
	}

	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var request struct {
			ID     interface{} `json:"id"`
			Method string      `json:"method"`
		}
		require.NoError(t, json.Unmarshal(body, &request))

		mu.Lock()
		index := calls
		calls++
		mu.Unlock()
		require.Less(t, index, len(queue), "unexpected extra rpc call: %s", request.Method)

		response := strings.TrimSpace(queue[index])
		if !strings.HasPrefix(response, `{"jsonrpc"`) {
			id, _ := json.Marshal(request.ID)
			response = fmt.Sprintf(`{"jsonrpc":"2.0","id":%s,"result":%s}`, string(id), response)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	return server, server.Close
}
