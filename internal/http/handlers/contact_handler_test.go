package handlers

import (
	"net/http"
	"testing"

	"github.com/RizBits14/creovate-server/internal/domain"
)

func TestContact_Submit(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(newHandlers(db), nil)

	w := do(t, r, http.MethodPost, "/contact", `{"name":" Riz ","email":"riz@example.com","message":"I would like a print."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit = %d (%s)", w.Code, w.Body.String())
	}
	if s := decode[SuccessResponse](t, w); !s.Success || s.Already {
		t.Fatalf("submit body: %+v", s)
	}

	var msgs []domain.ContactMessage
	if err := db.Find(&msgs).Error; err != nil {
		t.Fatalf("read messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Email != "riz@example.com" || msgs[0].ID == "" {
		t.Fatalf("stored messages: %+v", msgs)
	}
}

func TestContact_Validation(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	cases := []struct {
		name, body, msg string
	}{
		{"name short", `{"name":"R","email":"riz@example.com","message":"long enough message"}`, "Name too short"},
		{"email shape", `{"name":"Riz","email":"riz@example","message":"long enough message"}`, "Invalid email"},
		{"message short", `{"name":"Riz","email":"riz@example.com","message":"hi"}`, "Message too short"},
		{"empty", "", "Name too short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/contact", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d; want 400", w.Code)
			}
			if resp := decode[ErrorResponse](t, w); resp.Message != tc.msg {
				t.Fatalf("message=%q; want %q", resp.Message, tc.msg)
			}
		})
	}
}

func TestContact_StoreError(t *testing.T) {
	h := New(failingArtworks{}, failingFavourites{}, failingReviews{}, failingContact{}, nil)
	expectServerError(t, do(t, newRouter(h, nil), http.MethodPost, "/contact",
		`{"name":"Riz","email":"riz@example.com","message":"long enough message"}`))
}
