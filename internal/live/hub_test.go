package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast(Message{Type: "order.status.changed", Data: map[string]string{"id": "O1"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Type != "order.status.changed" {
		t.Fatalf("type = %s", got.Type)
	}
}

func TestClientRemovedOnClose(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	_ = conn.Close()
	for h.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not removed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	h := NewHub(zap.NewNop())
	// client tanpa writer: antreannya tidak pernah dikuras
	slow := &client{send: make(chan []byte, 1)}
	h.add(slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			h.Broadcast(Message{Type: "order.status.changed"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}
	if h.Clients() != 0 {
		t.Fatalf("clients = %d, want 0", h.Clients())
	}
	if _, ok := <-slow.send; !ok {
		t.Fatal("queued message lost before close")
	}
	if _, ok := <-slow.send; ok {
		t.Fatal("send channel should be closed")
	}
}
