package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/RizBits14/creovate-server/internal/http/middleware"
)

func TestArtworks_CreateGetListFlow(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	w := do(t, r, http.MethodPost, "/arts",
		`{"title":"Dawn","email":"a@x.io","visibility":"Public","likes":7,"_id":"nope"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /arts = %d (%s)", w.Code, w.Body.String())
	}
	ins := decode[InsertResponse](t, w)
	if !ins.Success || ins.InsertedID == "" || ins.InsertedID == "nope" {
		t.Fatalf("unexpected insert body: %+v", ins)
	}

	w = do(t, r, http.MethodGet, "/arts/"+ins.InsertedID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /arts/:id = %d", w.Code)
	}
	art := decode[map[string]any](t, w)
	if art["_id"] != ins.InsertedID || art["title"] != "Dawn" || art["visibility"] != "Public" {
		t.Fatalf("unexpected artwork: %v", art)
	}
	if art["likes"] != float64(7) {
		t.Fatalf("likes=%v; want 7", art["likes"])
	}
	if _, ok := art["createdAt"]; !ok {
		t.Fatalf("createdAt missing: %v", art)
	}

	// second, private artwork by someone else
	if w := do(t, r, http.MethodPost, "/arts", `{"title":"Dusk","email":"b@x.io","visibility":"Private"}`); w.Code != http.StatusCreated {
		t.Fatalf("POST /arts #2 = %d", w.Code)
	}

	all := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/arts", ""))
	if len(all) != 2 || all[0]["title"] != "Dusk" {
		t.Fatalf("expected 2 artworks newest first, got %v", all)
	}
	pub := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/arts?visibility=Public", ""))
	if len(pub) != 1 || pub[0]["title"] != "Dawn" {
		t.Fatalf("visibility filter: %v", pub)
	}
	both := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/arts?visibility=Public&email=b@x.io", ""))
	if len(both) != 0 {
		t.Fatalf("combined filter should match nothing: %v", both)
	}

	mine := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/my-arts?email=b@x.io", ""))
	if len(mine) != 1 || mine[0]["title"] != "Dusk" {
		t.Fatalf("my-arts: %v", mine)
	}
	w = do(t, r, http.MethodGet, "/my-arts", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("my-arts without email = %d %q; want 200 []", w.Code, w.Body.String())
	}

	feat := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/featured", ""))
	if len(feat) != 1 || feat[0]["title"] != "Dawn" {
		t.Fatalf("featured: %v", feat)
	}
}

func TestArtworks_CreateEmptyBody(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	w := do(t, r, http.MethodPost, "/arts", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /arts (empty) = %d", w.Code)
	}
	id := decode[InsertResponse](t, w).InsertedID
	art := decode[map[string]any](t, do(t, r, http.MethodGet, "/arts/"+id, ""))
	if art["likes"] != float64(0) {
		t.Fatalf("likes=%v; want 0", art["likes"])
	}
}

func TestArtworks_CreateMalformedBody(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	w := do(t, r, http.MethodPost, "/arts", `{"title":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d; want 400", w.Code)
	}
	if resp := decode[ErrorResponse](t, w); resp.Code != ErrCodeBadRequest {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestArtworks_GetMissingIsNull(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	w := do(t, r, http.MethodGet, "/arts/"+uuid.NewString(), "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("GET missing = %d %q; want 200 null", w.Code, w.Body.String())
	}
}

func TestArtworks_MalformedIDIsServerError(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)

	expectServerError(t, do(t, r, http.MethodGet, "/arts/not-an-id", ""))
	expectServerError(t, do(t, r, http.MethodPatch, "/arts/not-an-id", `{"title":"x"}`))
	expectServerError(t, do(t, r, http.MethodPatch, "/arts/not-an-id/like", ""))
	expectServerError(t, do(t, r, http.MethodDelete, "/arts/not-an-id", ""))
}

func TestArtworks_UpdateLikeDelete(t *testing.T) {
	r := newRouter(newHandlers(newTestDB(t)), nil)
	id := decode[InsertResponse](t, do(t, r, http.MethodPost, "/arts", `{"title":"Old","likes":2}`)).InsertedID

	w := do(t, r, http.MethodPatch, "/arts/"+id, `{"title":"New","likes":99,"createdAt":"2000-01-01T00:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH = %d", w.Code)
	}
	if m := decode[ModifiedResponse](t, w); !m.Success || m.ModifiedCount != 1 {
		t.Fatalf("PATCH body: %+v", m)
	}
	// unchanged values modify nothing
	if m := decode[ModifiedResponse](t, do(t, r, http.MethodPatch, "/arts/"+id, `{"title":"New"}`)); m.ModifiedCount != 0 {
		t.Fatalf("no-op PATCH modifiedCount=%d", m.ModifiedCount)
	}
	if m := decode[ModifiedResponse](t, do(t, r, http.MethodPatch, "/arts/"+uuid.NewString(), `{"title":"x"}`)); !m.Success || m.ModifiedCount != 0 {
		t.Fatalf("PATCH missing: %+v", m)
	}
	if w := do(t, r, http.MethodPatch, "/arts/"+id, `[1]`); w.Code != http.StatusBadRequest {
		t.Fatalf("PATCH array body = %d; want 400", w.Code)
	}

	for i := 0; i < 3; i++ {
		if m := decode[ModifiedResponse](t, do(t, r, http.MethodPatch, "/arts/"+id+"/like", "")); m.ModifiedCount != 1 {
			t.Fatalf("like #%d modifiedCount=%d", i+1, m.ModifiedCount)
		}
	}
	if m := decode[ModifiedResponse](t, do(t, r, http.MethodPatch, "/arts/"+uuid.NewString()+"/like", "")); m.ModifiedCount != 0 {
		t.Fatalf("like missing modifiedCount=%d", m.ModifiedCount)
	}

	art := decode[map[string]any](t, do(t, r, http.MethodGet, "/arts/"+id, ""))
	if art["title"] != "New" || art["likes"] != float64(5) {
		t.Fatalf("after patch+likes: %v", art)
	}
	if strings.HasPrefix(art["createdAt"].(string), "2000") {
		t.Fatalf("createdAt must not be patched: %v", art["createdAt"])
	}

	w = do(t, r, http.MethodDelete, "/arts/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE = %d", w.Code)
	}
	if d := decode[DeletedResponse](t, w); !d.Success || d.DeletedCount != 1 {
		t.Fatalf("DELETE body: %+v", d)
	}

	w = do(t, r, http.MethodDelete, "/arts/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("DELETE again = %d; want 404", w.Code)
	}
	if d := decode[DeletedResponse](t, w); d.Success || d.DeletedCount != 0 || d.Message != "Not found" {
		t.Fatalf("DELETE again body: %+v", d)
	}
	if w := do(t, r, http.MethodGet, "/arts/"+id, ""); strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("GET after delete = %q", w.Body.String())
	}
}

func TestArtworks_IdempotentCreate(t *testing.T) {
	idem := &stubIdem{}
	h := newHandlers(newTestDB(t))
	h.idemSvc = idem
	r := newRouter(h, idem.exists)

	first := do(t, r, http.MethodPost, "/arts", `{"title":"Once"}`, middleware.HeaderIdempotencyKey, "k-1")
	if first.Code != http.StatusCreated || first.Header().Get(HeaderIdempotencyReplayed) != "" {
		t.Fatalf("first create = %d replayed=%q", first.Code, first.Header().Get(HeaderIdempotencyReplayed))
	}
	id := decode[InsertResponse](t, first).InsertedID

	again := do(t, r, http.MethodPost, "/arts", `{"title":"Once"}`, middleware.HeaderIdempotencyKey, "k-1")
	if again.Code != http.StatusCreated || again.Header().Get(HeaderIdempotencyReplayed) != "true" {
		t.Fatalf("replay = %d replayed=%q", again.Code, again.Header().Get(HeaderIdempotencyReplayed))
	}
	if got := decode[InsertResponse](t, again).InsertedID; got != id {
		t.Fatalf("replayed id=%q; want %q", got, id)
	}
	if idem.records != 1 {
		t.Fatalf("records=%d; want 1", idem.records)
	}

	arts := decode[[]map[string]any](t, do(t, r, http.MethodGet, "/arts", ""))
	if len(arts) != 1 {
		t.Fatalf("replay must not insert, have %d artworks", len(arts))
	}

	// a different key creates a new artwork
	other := decode[InsertResponse](t, do(t, r, http.MethodPost, "/arts", `{"title":"Once"}`, middleware.HeaderIdempotencyKey, "k-2"))
	if other.InsertedID == id {
		t.Fatalf("different key reused id %q", id)
	}
}

func TestArtworks_IdempotencyFailuresDoNotFailCreate(t *testing.T) {
	idem := &stubIdem{recordErr: errors.New("record down")}
	h := newHandlers(newTestDB(t))
	h.idemSvc = idem
	r := newRouter(h, idem.exists)

	w := do(t, r, http.MethodPost, "/arts", `{"title":"x"}`, middleware.HeaderIdempotencyKey, "k-err")
	if w.Code != http.StatusCreated {
		t.Fatalf("create with failing record = %d", w.Code)
	}
	if idem.records != 1 {
		t.Fatalf("records=%d; want 1", idem.records)
	}
}

func TestArtworks_StoreErrors(t *testing.T) {
	h := New(failingArtworks{}, failingFavourites{}, failingReviews{}, failingContact{}, nil)
	r := newRouter(h, nil)
	id := uuid.NewString()

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/arts", ""},
		{http.MethodGet, "/my-arts?email=a@x.io", ""},
		{http.MethodGet, "/featured", ""},
		{http.MethodGet, "/arts/" + id, ""},
		{http.MethodPost, "/arts", `{"title":"x"}`},
		{http.MethodPatch, "/arts/" + id, `{"title":"x"}`},
		{http.MethodPatch, "/arts/" + id + "/like", ""},
		{http.MethodDelete, "/arts/" + id, ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, tc.body)
			expectServerError(t, w)
			if strings.Contains(w.Body.String(), errStore.Error()) {
				t.Fatalf("store detail leaked: %s", w.Body.String())
			}
		})
	}
}
