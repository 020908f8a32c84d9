package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFromContext_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=50&offset=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_NegativeOffset(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?offset=-5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", p.Offset)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 10, 3, 0)
	if !resp.HasMore {
		t.Error("expected HasMore true")
	}

	resp = NewResponse([]int{1, 2, 3}, 3, 3, 0)
	if resp.HasMore {
		t.Error("expected HasMore false")
	}
}

func TestNewResponse_PageOffsets(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 10, 3, 3)
	if resp.NextOffset == nil || *resp.NextOffset != 6 {
		t.Errorf("expected next offset 6, got %v", resp.NextOffset)
	}
	if resp.PreviousOffset == nil || *resp.PreviousOffset != 0 {
		t.Errorf("expected previous offset 0, got %v", resp.PreviousOffset)
	}

	first := NewResponse([]int{1, 2, 3}, 10, 3, 0)
	if first.PreviousOffset != nil {
		t.Errorf("expected no previous offset on first page, got %d", *first.PreviousOffset)
	}

	last := NewResponse([]int{1}, 10, 3, 9)
	if last.NextOffset != nil {
		t.Errorf("expected no next offset on last page, got %d", *last.NextOffset)
	}
}

func TestParams_Offsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}

	if p.NextOffset() != 60 {
		t.Errorf("expected next offset 60, got %d", p.NextOffset())
	}
	if p.PreviousOffset() != 20 {
		t.Errorf("expected previous offset 20, got %d", p.PreviousOffset())
	}

	p.Offset = 5
	if p.PreviousOffset() != 0 {
		t.Errorf("expected previous offset clamped to 0, got %d", p.PreviousOffset())
	}
	if !p.HasPrevious() {
		t.Error("expected HasPrevious true at offset 5")
	}
}
