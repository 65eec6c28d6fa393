package statsd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenUDP opens a local UDP listener and returns its address plus a
// channel of received lines.
func listenUDP(t *testing.T) (string, chan string) {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	lines := make(chan string, 16)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, _, readErr := conn.ReadFrom(buf)
			if readErr != nil {
				return
			}
			lines <- string(buf[:n])
		}
	}()

	return conn.LocalAddr().String(), lines
}

func recvLine(t *testing.T, lines chan string) string {
	t.Helper()
	select {
	case line := <-lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for statsd line")
		return ""
	}
}

func TestClient_Disabled(t *testing.T) {
	client, err := NewClient(Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// Emitting on a disabled client must not panic.
	client.Count("requests", 1, nil)
	assert.NoError(t, client.Close())
}

func TestClient_CountWithPrefixAndTags(t *testing.T) {
	addr, lines := listenUDP(t)

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    addr,
		Prefix:     "fitpick.gateway.",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer client.Close()

	client.Count("backend.request", 1, map[string]string{"outcome": "ok"})

	line := recvLine(t, lines)
	assert.True(t, strings.HasPrefix(line, "fitpick.gateway.backend.request:1|c"), line)
	assert.Contains(t, line, "env:test")
	assert.Contains(t, line, "outcome:ok")
}

func TestClient_Timing(t *testing.T) {
	addr, lines := listenUDP(t)

	client, err := NewClient(Config{Enabled: true, Address: addr})
	require.NoError(t, err)
	defer client.Close()

	client.Timing("http.request", 250*time.Millisecond, nil)

	line := recvLine(t, lines)
	assert.Equal(t, "http.request:250|ms", line)
}

func TestClient_MetricNameSanitized(t *testing.T) {
	client := &Client{prefix: "fitpick"}
	assert.Equal(t, "fitpick.a.b_c", client.metricName(" a..b/c "))
	assert.Equal(t, "", client.metricName("  "))
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	client.Count("x", 1, nil)
	client.Gauge("x", 1, nil)
	client.Timing("x", time.Second, nil)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}
