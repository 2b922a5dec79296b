package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit window", "?limit=50&offset=40", 50, 40},
		{"limit clamped", "?limit=500", MaxLimit, 0},
		{"zero limit falls back", "?limit=0", DefaultLimit, 0},
		{"negative offset floored", "?offset=-5", DefaultLimit, 0},
		{"garbage ignored", "?limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paramsFor(t, tt.query)
			if got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("params = %+v, want limit %d offset %d", got, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestLinksMiddlePage(t *testing.T) {
	p := Params{Limit: 10, Offset: 20}
	links := p.Links("/api/v1/patients", 100)

	want := map[string]string{
		"self":     "/api/v1/patients?offset=20&limit=10",
		"next":     "/api/v1/patients?offset=30&limit=10",
		"previous": "/api/v1/patients?offset=10&limit=10",
	}
	if len(links) != len(want) {
		t.Fatalf("links = %+v, want 3", links)
	}
	for _, l := range links {
		if want[l.Relation] != l.URL {
			t.Errorf("%s = %q, want %q", l.Relation, l.URL, want[l.Relation])
		}
	}
}

func TestLinksFirstAndLastPage(t *testing.T) {
	first := Params{Limit: 10, Offset: 0}.Links("/api/v1/patients", 30)
	for _, l := range first {
		if l.Relation == "previous" {
			t.Error("first page should have no previous link")
		}
	}

	last := Params{Limit: 10, Offset: 20}.Links("/api/v1/patients", 30)
	for _, l := range last {
		if l.Relation == "next" {
			t.Error("last page should have no next link")
		}
	}
}

func TestPreviousOffsetFloorsAtZero(t *testing.T) {
	p := Params{Limit: 20, Offset: 5}
	if got := p.PreviousOffset(); got != 0 {
		t.Errorf("PreviousOffset = %d, want 0", got)
	}
}

func TestNewResponse(t *testing.T) {
	p := Params{Limit: 2, Offset: 0}
	res := NewResponse([]string{"a", "b"}, 5, p, "/api/v1/patients")

	if res.Total != 5 || res.Limit != 2 || res.Offset != 0 {
		t.Errorf("envelope = %+v", res)
	}
	if !res.HasMore {
		t.Error("HasMore = false with 3 rows remaining")
	}
	if len(res.Links) != 2 {
		t.Errorf("links = %+v, want self and next", res.Links)
	}

	lastPage := NewResponse([]string{"e"}, 5, Params{Limit: 2, Offset: 4}, "/api/v1/patients")
	if lastPage.HasMore {
		t.Error("HasMore = true on the final page")
	}
}
