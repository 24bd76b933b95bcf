package render

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-swap/internal/domain"
)

// recordingOps captures relayed commands.
type recordingOps struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingOps) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recordingOps) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingOps) EditAmount(raw string)                 { r.record("edit:" + raw) }
func (r *recordingOps) ToggleSelector(side domain.Side)       { r.record("toggle:" + string(side)) }
func (r *recordingOps) Pick(side domain.Side, currency string) { r.record("pick:" + string(side) + ":" + currency) }
func (r *recordingOps) Reverse()                              { r.record("reverse") }
func (r *recordingOps) Submit()                               { r.record("submit") }
func (r *recordingOps) Search(query string)                   { r.record("search:" + query) }
func (r *recordingOps) DismissSelectors()                     { r.record("dismiss") }

var _ Ops = (*recordingOps)(nil)

func dialSink(t *testing.T, sink *WSSink) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(sink)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	return snap
}

func TestWSSink_BroadcastsSnapshots(t *testing.T) {
	sink := NewWSSink(nil, nil, nil)
	defer sink.Close()
	conn := dialSink(t, sink)

	sink.Publish(Snapshot{
		Pair:   domain.SelectionPair{From: "ETH", To: "BTC"},
		Result: domain.EmptyResult(),
		Rate:   "0.063",
	})

	snap := readSnapshot(t, conn)
	assert.Equal(t, "ETH", snap.Pair.From)
	assert.Equal(t, "0.0", snap.Result.OutputAmount)
	assert.Equal(t, "0.063", snap.Rate)
}

func TestWSSink_LateJoinerGetsLastSnapshot(t *testing.T) {
	sink := NewWSSink(nil, nil, nil)
	defer sink.Close()

	sink.Publish(Snapshot{Pair: domain.SelectionPair{From: "A", To: "B"}})

	conn := dialSink(t, sink)
	snap := readSnapshot(t, conn)
	assert.Equal(t, "A", snap.Pair.From, "connect replays the latest snapshot")
}

func TestWSSink_RelaysCommands(t *testing.T) {
	ops := &recordingOps{}
	sink := NewWSSink(ops, nil, nil)
	defer sink.Close()
	conn := dialSink(t, sink)

	for _, msg := range []string{
		`{"op":"edit_amount","value":"5"}`,
		`{"op":"toggle","side":"from"}`,
		`{"op":"pick","side":"from","currency":"ETH"}`,
		`{"op":"search","value":"et"}`,
		`{"op":"submit"}`,
		`{"op":"reverse"}`,
		`{"op":"dismiss"}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	}

	want := []string{
		"edit:5", "toggle:from", "pick:from:ETH", "search:et",
		"submit", "reverse", "dismiss",
	}
	require.Eventually(t, func() bool {
		return len(ops.recorded()) == len(want)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, want, ops.recorded())
}

func TestWSSink_UnknownCommandIsIgnored(t *testing.T) {
	ops := &recordingOps{}
	sink := NewWSSink(ops, nil, nil)
	defer sink.Close()
	conn := dialSink(t, sink)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"self_destruct"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"submit"}`)))

	require.Eventually(t, func() bool {
		return len(ops.recorded()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"submit"}, ops.recorded())
}
