package backend

import (
	"encoding/json"
	"fmt"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// Every platform endpoint is expected to answer with the envelope
// {success, data, message}. In practice the backend is inconsistent about
// casing (camelCase vs PascalCase) and occasionally skips the envelope
// entirely. Decoding is therefore tolerant: each known shape is normalized
// into the canonical type here, in one place, instead of call sites
// guessing at fields.

// rawObject is a half-decoded JSON object keyed by field name.
type rawObject map[string]json.RawMessage

// pick returns the first present key from the candidate list.
func (o rawObject) pick(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && len(v) > 0 && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

// decodeEnvelope unwraps the response envelope and decodes its data into
// out. A success:false envelope becomes an upstream error carrying the
// backend's message verbatim. Payloads without an envelope (no success
// field) are treated as bare data.
func decodeEnvelope(payload []byte, out any) error {
	data, err := envelopeData(payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}
	return nil
}

// envelopeData returns the data portion of an envelope payload, or the
// payload itself when no envelope is present.
func envelopeData(payload []byte) (json.RawMessage, error) {
	var obj rawObject
	if err := json.Unmarshal(payload, &obj); err != nil {
		// Not an object (e.g. a bare array); treat as bare data.
		return payload, nil
	}

	successRaw, hasSuccess := obj.pick("success", "Success")
	if !hasSuccess {
		return payload, nil
	}

	var success bool
	if err := json.Unmarshal(successRaw, &success); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}
	if !success {
		msg := envelopeMessage(payload)
		if msg == "" {
			msg = "The request was rejected by the server."
		}
		return nil, apperrors.Upstream(msg)
	}

	if data, ok := obj.pick("data", "Data"); ok {
		return data, nil
	}
	// success envelope without data: callers decoding into struct get zero
	// values, which is what an empty response means.
	return json.RawMessage("{}"), nil
}

// envelopeMessage extracts the human-readable message from an envelope
// payload, tolerating both casings. Returns "" when absent.
func envelopeMessage(payload []byte) string {
	var obj rawObject
	if err := json.Unmarshal(payload, &obj); err != nil {
		return ""
	}
	raw, ok := obj.pick("message", "Message")
	if !ok {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return msg
}

// pagePayload mirrors the paginated data shape nested inside the envelope,
// tolerating both casings via normalizePage.
type pagePayload struct {
	Items      json.RawMessage
	TotalItems int
	TotalPages int
	PageSize   int
	PageNumber int
}

// decodePage decodes envelope data holding a paginated listing of T.
// Two nesting variants occur in the wild: the documented
// {items, totalItems, ...} object, and a bare array (older endpoints). For
// the bare-array case the counts degrade to the length of the array.
func decodePage[T any](data json.RawMessage) (model.Page[T], error) {
	// Bare array variant.
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
		}
		return model.Page[T]{
			Items:      items,
			TotalItems: len(items),
			TotalPages: 1,
			PageSize:   len(items),
			PageNumber: 1,
		}, nil
	}

	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}

	pp, err := normalizePage(obj)
	if err != nil {
		return model.Page[T]{}, err
	}

	page := model.Page[T]{
		TotalItems: pp.TotalItems,
		TotalPages: pp.TotalPages,
		PageSize:   pp.PageSize,
		PageNumber: pp.PageNumber,
	}
	if len(pp.Items) > 0 {
		if err := json.Unmarshal(pp.Items, &page.Items); err != nil {
			return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
		}
	}
	return page, nil
}

func normalizePage(obj rawObject) (pagePayload, error) {
	var pp pagePayload
	if items, ok := obj.pick("items", "Items"); ok {
		pp.Items = items
	}
	for _, f := range []struct {
		dst  *int
		keys []string
	}{
		{&pp.TotalItems, []string{"totalItems", "TotalItems", "total_items"}},
		{&pp.TotalPages, []string{"totalPages", "TotalPages", "total_pages"}},
		{&pp.PageSize, []string{"pageSize", "PageSize", "page_size"}},
		{&pp.PageNumber, []string{"pageNumber", "PageNumber", "page_number"}},
	} {
		raw, ok := obj.pick(f.keys...)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return pagePayload{}, apperrors.Wrap(err,
				apperrors.ErrCodeUpstream,
				fmt.Sprintf("backend returned a malformed %s", f.keys[0]))
		}
	}
	return pp, nil
}
