package smartrecruiters

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate_ReturnsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/reporting-api/v201804/reports/r1/files" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-SmartToken") != "tok" {
			t.Errorf("Missing X-SmartToken header")
		}
		json.NewEncoder(w).Encode(map[string]string{"reportFileStatus": "PENDING"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	status, err := c.Generate("r1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if status != "PENDING" {
		t.Errorf("Expected PENDING, got %q", status)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "report generation already running"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.Generate("r1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409, got %d", httpErr.StatusCode)
	}
	if httpErr.Message != "report generation already running" {
		t.Errorf("Expected API message, got %q", httpErr.Message)
	}
}

func TestListFiles_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"content": []map[string]string{
					{"schedulingDate": "2023-01-01T00:00:00Z", "reportFileStatus": "COMPLETED"},
				},
				"nextPage": "p2",
			})
		case "p2":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"content": []map[string]string{
					{"schedulingDate": "2023-01-02T00:00:00Z", "reportFileStatus": "PENDING"},
				},
			})
		default:
			t.Errorf("Unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	files, err := c.ListFiles("r1")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 entries across pages, got %d", len(files))
	}
	if files[1].SchedulingDate != "2023-01-02T00:00:00Z" {
		t.Errorf("Expected second page entry, got %+v", files[1])
	}
}

func TestDownloadRecent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reporting-api/v201804/reports/r1/files/recent/data" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("Name,Email\na,b\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	data, err := c.DownloadRecent("r1")
	if err != nil {
		t.Fatalf("DownloadRecent failed: %v", err)
	}
	if string(data) != "Name,Email\na,b\n" {
		t.Errorf("Unexpected payload %q", string(data))
	}
}

func TestDownloadRecent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.DownloadRecent("r1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 HTTPError, got %v", err)
	}
}
