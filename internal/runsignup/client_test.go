package runsignup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// testClient points a client at a test server with no page delay.
func testClient(serverURL string) *Client {
	c := New()
	c.baseURL = serverURL
	c.pageDelay = 0
	return c
}

// makePage builds a listing page with n races starting at the given id.
func makePage(n, startID int) racesResponse {
	page := racesResponse{Races: make([]raceWrapper, 0, n)}
	for i := 0; i < n; i++ {
		page.Races = append(page.Races, raceWrapper{Race: Race{
			RaceID:   startID + i,
			Name:     fmt.Sprintf("Race %d", startID+i),
			NextDate: "06/15/2026",
		}})
	}
	return page
}

func TestFetchStatePagination(t *testing.T) {
	var requests int32

	// Two full pages then a partial page; no fourth request expected
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		if got := r.URL.Query().Get("state"); got != "WA" {
			t.Errorf("state = %q, want %q", got, "WA")
		}
		if got := r.URL.Query().Get("results_per_page"); got != "50" {
			t.Errorf("results_per_page = %q, want %q", got, "50")
		}

		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			json.NewEncoder(w).Encode(makePage(50, 0))
		case "2":
			json.NewEncoder(w).Encode(makePage(50, 50))
		case "3":
			json.NewEncoder(w).Encode(makePage(10, 100))
		default:
			t.Errorf("unexpected page request: %s", page)
			json.NewEncoder(w).Encode(makePage(0, 0))
		}
	}))
	defer server.Close()

	races, err := testClient(server.URL).FetchState("WA")
	if err != nil {
		t.Fatalf("FetchState failed: %v", err)
	}

	if len(races) != 110 {
		t.Errorf("got %d races, want 110", len(races))
	}
	if n := atomic.LoadInt32(&requests); n != 3 {
		t.Errorf("made %d requests, want 3", n)
	}
}

func TestFetchStateEmptyFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(makePage(0, 0))
	}))
	defer server.Close()

	races, err := testClient(server.URL).FetchState("OR")
	if err != nil {
		t.Fatalf("FetchState failed: %v", err)
	}
	if len(races) != 0 {
		t.Errorf("got %d races, want 0", len(races))
	}
}

func TestFetchStateMalformedLaterPage(t *testing.T) {
	// A malformed page past the first is logged and treated as end of data
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(makePage(50, 0))
			return
		}
		fmt.Fprint(w, "{not json")
	}))
	defer server.Close()

	races, err := testClient(server.URL).FetchState("CA")
	if err != nil {
		t.Fatalf("FetchState failed: %v", err)
	}
	if len(races) != 50 {
		t.Errorf("got %d races, want 50 from the first page", len(races))
	}
}

func TestFetchStateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := testClient(server.URL).FetchState("WA")
	if err == nil {
		t.Fatal("expected an error when the first page is unreachable")
	}
}

func TestFetchPageErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchPage("WA", 1)
	if err == nil {
		t.Fatal("expected an error on a 500 response")
	}
}

func TestFetchPageRetriesRateLimit(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(makePage(5, 0))
	}))
	defer server.Close()

	races, err := testClient(server.URL).FetchPage("WA", 1)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(races) != 5 {
		t.Errorf("got %d races, want 5", len(races))
	}
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("made %d requests, want 2", n)
	}
}
