/* Copyright (c) 2021 David Bulkow */

package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/codec"
	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/dbulkow/roomreserve/internal/slot"
	"github.com/dbulkow/roomreserve/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiReply struct {
	Status       string        `json:"status"`
	Kind         string        `json:"kind"`
	Message      string        `json:"message"`
	Error        string        `json:"error"`
	Reservation  *Reservation  `json:"reservation"`
	Reservations []Reservation `json:"reservations"`
	Rooms        []string      `json:"rooms"`
}

func newServer(t *testing.T) *Server {
	t.Helper()

	opts := append(session.CodecOptions("en"), codec.WithLocation(time.UTC))
	c := codec.New(slot.NewMemory(), opts...)

	sess, err := session.Open(c, []string{"A", "B", "C"}, "en", nil, store.WithLocation(time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	s := New(sess, nil)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(s.Close)

	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) (*http.Response, apiReply) {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	resp := w.Result()

	var rpy apiReply
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&rpy); err != nil {
			t.Fatal(err)
		}
	}

	return resp, rpy
}

const yamada = `{"room":"A","start":"2024-06-01T10:00","end":"2024-06-01T11:00","reserverName":"Yamada"}`

func TestCreate(t *testing.T) {
	h := newServer(t).Routes()

	resp, rpy := do(t, h, http.MethodPost, "/api/reservations", yamada)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status code %d got %d", http.StatusCreated, resp.StatusCode)
	}

	if rpy.Status != "Success" || rpy.Kind != "ok" || rpy.Reservation == nil {
		t.Fatalf("unexpected reply %+v", rpy)
	}

	exp := "/api/reservations/" + rpy.Reservation.ID.String()
	if resp.Header.Get("Location") != exp {
		t.Fatalf("expected location \"%s\" got \"%s\"", exp, resp.Header.Get("Location"))
	}
}

func TestCreateFailures(t *testing.T) {
	h := newServer(t).Routes()

	do(t, h, http.MethodPost, "/api/reservations", yamada)

	tests := []struct {
		name string
		body string
		code int
		kind string
	}{
		{"overlap", yamada, http.StatusConflict, "overlap"},
		{"ordering", `{"room":"B","start":"2024-06-01T11:00","end":"2024-06-01T10:00","reserverName":"x"}`, http.StatusBadRequest, "ordering"},
		{"missing", `{"room":"B","start":"2024-06-01T10:00","end":"2024-06-01T11:00"}`, http.StatusBadRequest, "validation"},
		{"room", `{"room":"Q","start":"2024-06-01T10:00","end":"2024-06-01T11:00","reserverName":"x"}`, http.StatusBadRequest, "unknown-room"},
		{"split", `{"room":"A","startDate":"2024-06-01","startTime":"10:30","endDate":"2024-06-01","endTime":"10:45","reserverName":"x"}`, http.StatusConflict, "overlap"},
	}

	for _, tt := range tests {
		resp, rpy := do(t, h, http.MethodPost, "/api/reservations", tt.body)
		if resp.StatusCode != tt.code {
			t.Fatalf("%s: expected status code %d got %d", tt.name, tt.code, resp.StatusCode)
		}
		if rpy.Status != "Error" || rpy.Kind != tt.kind || rpy.Message == "" {
			t.Fatalf("%s: unexpected reply %+v", tt.name, rpy)
		}
	}
}

func TestCreateMalformed(t *testing.T) {
	h := newServer(t).Routes()

	resp, _ := do(t, h, http.MethodPost, "/api/reservations", `{"room":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status code %d got %d", http.StatusBadRequest, resp.StatusCode)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(yamada))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status code %d got %d", http.StatusUnsupportedMediaType, w.Code)
	}
}

func TestList(t *testing.T) {
	h := newServer(t).Routes()

	do(t, h, http.MethodPost, "/api/reservations", `{"room":"B","start":"2024-06-02T10:00","end":"2024-06-02T11:00","reserverName":"late"}`)
	do(t, h, http.MethodPost, "/api/reservations", yamada)

	resp, rpy := do(t, h, http.MethodGet, "/api/reservations", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status code %d got %d", http.StatusOK, resp.StatusCode)
	}

	if len(rpy.Reservations) != 2 {
		t.Fatalf("expected %d reservations got %d", 2, len(rpy.Reservations))
	}

	if rpy.Reservations[0].ReserverName != "Yamada" {
		t.Fatalf("expected chronological order, got %v", rpy.Reservations)
	}
}

func TestRooms(t *testing.T) {
	h := newServer(t).Routes()

	_, rpy := do(t, h, http.MethodGet, "/api/rooms", "")
	if strings.Join(rpy.Rooms, ",") != "A,B,C" {
		t.Fatalf("unexpected rooms %v", rpy.Rooms)
	}
}

func TestCancel(t *testing.T) {
	h := newServer(t).Routes()

	_, created := do(t, h, http.MethodPost, "/api/reservations", yamada)

	path := "/api/reservations/" + created.Reservation.ID.String()

	resp, rpy := do(t, h, http.MethodDelete, path, "")
	if resp.StatusCode != http.StatusOK || rpy.Kind != "ok" {
		t.Fatalf("expected cancel to succeed, got %d %+v", resp.StatusCode, rpy)
	}

	resp, _ = do(t, h, http.MethodDelete, path, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status code %d got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestExport(t *testing.T) {
	h := newServer(t).Routes()

	resp, rpy := do(t, h, http.MethodGet, "/api/reservations/export", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected empty export to be refused, got %d", resp.StatusCode)
	}
	if rpy.Message == "" {
		t.Fatalf("expected a message for the refused export")
	}

	do(t, h, http.MethodPost, "/api/reservations", yamada)

	r := httptest.NewRequest(http.MethodGet, "/api/reservations/export", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status code %d got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %s", ct)
	}

	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "room-reservations_20240601_1200.csv") {
		t.Fatalf("unexpected content disposition %s", cd)
	}

	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("expected byte order mark")
	}
}

func TestStream(t *testing.T) {
	s := newServer(t)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/reservations/stream"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var rpy apiReply
	if err := conn.ReadJSON(&rpy); err != nil {
		t.Fatal(err)
	}
	if len(rpy.Reservations) != 0 {
		t.Fatalf("expected empty initial list got %v", rpy.Reservations)
	}

	resp, err := http.Post(ts.URL+"/api/reservations", "application/json", strings.NewReader(yamada))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status code %d got %d", http.StatusCreated, resp.StatusCode)
	}

	rpy = apiReply{}
	if err := conn.ReadJSON(&rpy); err != nil {
		t.Fatal(err)
	}
	if len(rpy.Reservations) != 1 || rpy.Reservations[0].Room != "A" {
		t.Fatalf("expected pushed list with one reservation, got %v", rpy.Reservations)
	}
}

func TestFeedReplacesStale(t *testing.T) {
	f := newFeed()
	ch := f.join()

	f.publish([]Reservation{{Room: "old"}})
	f.publish([]Reservation{{Room: "new"}})

	list := <-ch
	if list[0].Room != "new" {
		t.Fatalf("expected newest list, got %v", list)
	}

	f.leave(ch)
	if f.size() != 0 {
		t.Fatalf("expected no clients")
	}
}
