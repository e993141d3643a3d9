package report

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrTransientMedia is returned when a transient attachment reaches a point
// where only the persisted form is allowed.
var ErrTransientMedia = errors.New("media attachment has not been persisted")

// Media is a report attachment in one of two representations.
//
// Transient: an in-memory blob captured from the submitter, not yet durable.
// Persisted: a self-contained data URL safe to serialize to the store.
//
// Only the persisted form crosses the kv boundary; Store.Create converts
// every transient attachment before writing. The blob is unexported and
// never serialized.
type Media struct {
	Name string `json:"name"`
	Size int64  `json:"size"`

	// Data is a data:<mime>;base64,<payload> URL. Empty while transient.
	Data string `json:"data,omitempty"`

	blob []byte
}

// NewTransient wraps a raw attachment blob in its transient form.
func NewTransient(name string, blob []byte) Media {
	return Media{Name: name, Size: int64(len(blob)), blob: blob}
}

// Persisted reports whether the attachment is in its durable encoded form.
func (m Media) Persisted() bool {
	return m.Data != ""
}

// Persist converts a transient attachment into its persisted form by
// encoding the blob as a data URL. Persisting an already-persisted
// attachment is a no-op.
func Persist(m Media) (Media, error) {
	if m.Persisted() {
		return m, nil
	}
	if m.blob == nil {
		return Media{}, fmt.Errorf("persist %q: attachment has no payload", m.Name)
	}

	mime := http.DetectContentType(m.blob)
	// DetectContentType appends charset parameters for text; data URLs in
	// the store carry the bare media type
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}

	m.Data = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(m.blob)
	m.Size = int64(len(m.blob))
	m.blob = nil
	return m, nil
}

// persistAll converts a slice of attachments, resolving each independently
// and honoring cancellation between attachments. The input slice is not
// mutated.
func persistAll(ctx context.Context, media []Media) ([]Media, error) {
	if len(media) == 0 {
		return nil, nil
	}
	out := make([]Media, 0, len(media))
	for i, m := range media {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("persist attachment %d: %w", i, err)
		}
		p, err := Persist(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
