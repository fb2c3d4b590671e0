package services

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Feed cursors are opaque to clients: base64 over the boundary item's
// creation instant (unix nanoseconds) and id. An empty cursor means the
// first page.

// EncodeCursor builds the cursor pointing at the given boundary item.
func EncodeCursor(createdAt time.Time, id string) string {
	raw := strconv.FormatInt(createdAt.UnixNano(), 10) + ":" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a client-supplied cursor. An empty cursor decodes
// to the zero time (first page).
func DecodeCursor(cursor string) (time.Time, string, error) {
	if cursor == "" {
		return time.Time{}, "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor: %w", err)
	}
	return time.Unix(0, nanos), parts[1], nil
}

// EncodePinnedCursor builds a cursor for listings where pinned items
// lead the order. The boundary item's pinned flag travels in the
// cursor so the next page can finish the pinned run before falling
// through to the unpinned tail.
func EncodePinnedCursor(createdAt time.Time, id string, pinned bool) string {
	flag := "0"
	if pinned {
		flag = "1"
	}
	raw := strconv.FormatInt(createdAt.UnixNano(), 10) + ":" + flag + ":" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodePinnedCursor parses a pinned-aware cursor. An empty cursor
// decodes to the zero time (first page).
func DecodePinnedCursor(cursor string) (time.Time, string, bool, error) {
	if cursor == "" {
		return time.Time{}, "", false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", false, fmt.Errorf("malformed cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 3)
	if len(parts) != 3 || (parts[1] != "0" && parts[1] != "1") {
		return time.Time{}, "", false, fmt.Errorf("malformed cursor")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", false, fmt.Errorf("malformed cursor: %w", err)
	}
	return time.Unix(0, nanos), parts[2], parts[1] == "1", nil
}

// MergeByID appends incoming items onto an existing page, dropping any
// item whose id was already seen. Order is preserved and the first
// occurrence wins, so re-delivered boundary items do not duplicate.
func MergeByID[T any](existing, incoming []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]T, 0, len(existing)+len(incoming))
	for _, item := range existing {
		key := id(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
	}
	for _, item := range incoming {
		key := id(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
