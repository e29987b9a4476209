// Package domain defines the persistence models for artworks, favourites,
// reviews and contact messages. These types are mapped with GORM and form
// the core data layer of the gallery API.
package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// VisibilityPublic is the visibility value that makes an artwork eligible
// for the featured list.
const VisibilityPublic = "Public"

// Artwork is a user-submitted painting record. Besides the typed columns the
// server treats every other attribute (title, image URL, medium, price...)
// as opaque and keeps it in Fields.
//
// Fields:
//   - ID: store-assigned UUID primary key (char(36)).
//   - Email: owner email when supplied as a string; indexed for "my arts".
//   - Visibility: "Public" or any other string; indexed for filtering.
//   - Likes: non-negative counter, only changed by the like operation.
//   - Fields: opaque client attributes stored as a JSON document.
//   - CreatedAt: stamped once at insert, newest-first index.
type Artwork struct {
	ID         string            `gorm:"type:char(36);primaryKey"`
	Email      string            `gorm:"type:varchar(320);index:idx_arts_email"`
	Visibility string            `gorm:"type:varchar(64);index:idx_arts_visibility"`
	Likes      int64             `gorm:"not null;default:0"`
	Fields     datatypes.JSONMap `gorm:"not null"`
	CreatedAt  time.Time         `gorm:"index:idx_arts_created_at,sort:desc"`
}

// TableName returns the database table name for Artwork.
func (Artwork) TableName() string { return "arts" }

// Reserved artwork attribute names. They map to typed columns rather than
// the opaque field document.
const (
	attrID         = "_id"
	attrEmail      = "email"
	attrVisibility = "visibility"
	attrLikes      = "likes"
	attrCreatedAt  = "createdAt"
)

// NewArtwork builds an artwork from a client body. The id and createdAt
// supplied by the client are ignored; likes is kept only when numeric.
func NewArtwork(id string, doc map[string]any, now time.Time) *Artwork {
	a := &Artwork{ID: id, Fields: datatypes.JSONMap{}, CreatedAt: now}
	if n, ok := numeric(doc[attrLikes]); ok && n > 0 {
		a.Likes = int64(n)
	}
	for k, v := range doc {
		switch k {
		case attrID, attrLikes, attrCreatedAt:
			continue
		}
		a.set(k, v)
	}
	return a
}

// ApplyPatch sets every attribute present in doc except the id, likes and
// createdAt. It reports whether the stored representation changed.
func (a *Artwork) ApplyPatch(doc map[string]any) bool {
	before, _ := json.Marshal(a)
	if a.Fields == nil {
		a.Fields = datatypes.JSONMap{}
	}
	for k, v := range doc {
		switch k {
		case attrID, attrLikes, attrCreatedAt:
			continue
		}
		a.set(k, v)
	}
	after, _ := json.Marshal(a)
	return string(before) != string(after)
}

// set routes one attribute to its typed column or to the opaque document.
// Non-string email/visibility values stay opaque so they never match a
// string filter. An empty string is kept in the document as well, which
// tells MarshalJSON the key was sent.
func (a *Artwork) set(k string, v any) {
	switch k {
	case attrEmail, attrVisibility:
		s, isString := v.(string)
		col := &a.Email
		if k == attrVisibility {
			col = &a.Visibility
		}
		if isString && s != "" {
			*col = s
			delete(a.Fields, k)
			return
		}
		*col = ""
	}
	a.Fields[k] = v
}

// MarshalJSON renders the artwork as one flat document. email and
// visibility are omitted only when they were never set.
func (a Artwork) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Fields)+5)
	for k, v := range a.Fields {
		out[k] = v
	}
	out[attrID] = a.ID
	if a.Email != "" {
		out[attrEmail] = a.Email
	}
	if a.Visibility != "" {
		out[attrVisibility] = a.Visibility
	}
	out[attrLikes] = a.Likes
	out[attrCreatedAt] = a.CreatedAt
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (a *Artwork) UnmarshalJSON(b []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*a = Artwork{Fields: datatypes.JSONMap{}}
	if id, ok := doc[attrID].(string); ok {
		a.ID = id
	}
	if n, ok := numeric(doc[attrLikes]); ok {
		a.Likes = int64(n)
	}
	if s, ok := doc[attrCreatedAt].(string); ok {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		a.CreatedAt = t
	}
	for k, v := range doc {
		switch k {
		case attrID, attrLikes, attrCreatedAt:
			continue
		}
		a.set(k, v)
	}
	return nil
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Favourite marks an artwork as favourited by a user. ArtworkID is a plain
// string reference; there is no enforced foreign key.
type Favourite struct {
	ID        string    `json:"_id"       gorm:"type:char(36);primaryKey"`
	UserEmail string    `json:"userEmail" gorm:"type:varchar(320);not null;index:idx_favourites_user_artwork,priority:1"`
	ArtworkID string    `json:"artworkId" gorm:"type:varchar(64);not null;index:idx_favourites_user_artwork,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for Favourite.
func (Favourite) TableName() string { return "favourites" }

// Review is a star rating with a comment. A user can review a given artwork
// only once (enforced by unique index).
type Review struct {
	ID        string    `json:"_id"       gorm:"type:char(36);primaryKey"`
	ArtworkID string    `json:"artworkId" gorm:"type:varchar(64);not null;uniqueIndex:ux_reviews_artwork_user,priority:1"`
	UserEmail string    `json:"userEmail" gorm:"type:varchar(320);not null;uniqueIndex:ux_reviews_artwork_user,priority:2"`
	UserName  string    `json:"userName"  gorm:"type:varchar(255);not null"`
	Rating    int       `json:"rating"    gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `json:"comment"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_reviews_created_at,sort:desc"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// ContactMessage is a contact-form submission. It is write-only.
type ContactMessage struct {
	ID        string    `json:"_id"       gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"     gorm:"type:varchar(320);not null"`
	Message   string    `json:"message"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_messages_created_at,sort:desc"`
}

// TableName returns the database table name for ContactMessage.
func (ContactMessage) TableName() string { return "messages" }
