package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 2, 13},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	if got := CalculateOffset(3, 20); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
	if got := CalculateOffset(0, 0); got != 0 {
		t.Fatalf("expected defaults to give 0, got %d", got)
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query     string
		max       int
		wantPage  int
		wantLimit int
	}{
		{"", 0, 1, 10},
		{"page=2&limit=5", 0, 2, 5},
		{"page=-1&limit=abc", 0, 1, 10},
		{"limit=500", 100, 1, 100},
		{"limit=500", 0, 1, 500},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/fetchStudents?"+tc.query, nil)
		page, limit := ParsePaginationParams(c, tc.max)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("%q: got page=%d limit=%d", tc.query, page, limit)
		}
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	if got := ContainsPattern(`50%_off\`); got != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern %q", got)
	}
	if got := QuoteRegex("a.b*"); got != `a\.b\*` {
		t.Fatalf("unexpected regex %q", got)
	}
	if !ContainsFold("Ann Lee", "ann") {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("2024-01-15T05:30:00+05:30"); err != nil {
		t.Fatalf("expected RFC 3339 to parse: %v", err)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
