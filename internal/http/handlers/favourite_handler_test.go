package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestFavourites_AddListCheckRemove(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	w := do(t, r, http.MethodPost, "/favourites", `{"userEmail":"a@x.io","artworkId":"art-1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("first add = %d (%s)", w.Code, w.Body.String())
	}
	if s := decode[SuccessResponse](t, w); !s.Success || s.Already {
		t.Fatalf("first add body: %+v", s)
	}

	w = do(t, r, http.MethodPost, "/favourites", `{"userEmail":"a@x.io","artworkId":"art-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("second add = %d; want 200", w.Code)
	}
	if s := decode[SuccessResponse](t, w); !s.Success || !s.Already {
		t.Fatalf("second add body: %+v", s)
	}
	if w := do(t, r, http.MethodPost, "/favourites", `{"userEmail":"a@x.io","artworkId":"art-2"}`); w.Code != http.StatusCreated {
		t.Fatalf("add art-2 = %d", w.Code)
	}

	favs := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/favourites?email=a@x.io", ""))
	if len(favs) != 2 {
		t.Fatalf("favourites=%v; want 2", favs)
	}
	if favs[0]["userEmail"] != "a@x.io" || favs[0]["_id"] == "" {
		t.Fatalf("unexpected favourite shape: %v", favs[0])
	}
	w = do(t, r, http.MethodGet, "/favourites", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("list without email = %d %q", w.Code, w.Body.String())
	}

	if e := decode[ExistsResponse](t, do(t, r, http.MethodGet, "/favourites/check?email=a@x.io&artId=art-1", "")); !e.Exists {
		t.Fatalf("check art-1 should exist")
	}
	if e := decode[ExistsResponse](t, do(t, r, http.MethodGet, "/favourites/check?email=a@x.io&artId=art-9", "")); e.Exists {
		t.Fatalf("check art-9 should not exist")
	}
	if e := decode[ExistsResponse](t, do(t, r, http.MethodGet, "/favourites/check?email=a@x.io", "")); e.Exists {
		t.Fatalf("check without artId should be false")
	}

	w = do(t, r, http.MethodDelete, "/favourites/art-1?email=a@x.io", "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove = %d", w.Code)
	}
	if d := decode[DeletedResponse](t, w); !d.Success || d.DeletedCount != 1 {
		t.Fatalf("remove body: %+v", d)
	}
	// removing again still succeeds
	if d := decode[DeletedResponse](t, do(t, r, http.MethodDelete, "/favourites/art-1?email=a@x.io", "")); !d.Success || d.DeletedCount != 0 {
		t.Fatalf("second remove body: %+v", d)
	}
	if e := decode[ExistsResponse](t, do(t, r, http.MethodGet, "/favourites/check?email=a@x.io&artId=art-1", "")); e.Exists {
		t.Fatalf("art-1 still favourited after remove")
	}
}

func TestFavourites_Validation(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	cases := []struct {
		name, method, path, body, msg string
	}{
		{"missing artworkId", http.MethodPost, "/favourites", `{"userEmail":"a@x.io"}`, "Missing userEmail or artworkId"},
		{"empty body", http.MethodPost, "/favourites", "", "Missing userEmail or artworkId"},
		{"remove without email", http.MethodDelete, "/favourites/art-1", "", "Missing email query param"},
		{"malformed", http.MethodPost, "/favourites", `{"userEmail":`, "invalid JSON body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d; want 400", w.Code)
			}
			resp := decode[ErrorResponse](t, w)
			if resp.Success || resp.Code != ErrCodeBadRequest || resp.Message != tc.msg {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestFavourites_StoreErrors(t *testing.T) {
	h := New(failingArtworks{}, failingFavourites{}, failingReviews{}, failingContact{}, nil)
	r := newRouter(h, nil)

	expectServerError(t, do(t, r, http.MethodPost, "/favourites", `{"userEmail":"a@x.io","artworkId":"art-1"}`))
	expectServerError(t, do(t, r, http.MethodGet, "/favourites?email=a@x.io", ""))
	expectServerError(t, do(t, r, http.MethodGet, "/favourites/check?email=a@x.io&artId=art-1", ""))
	expectServerError(t, do(t, r, http.MethodDelete, "/favourites/art-1?email=a@x.io", ""))
}
