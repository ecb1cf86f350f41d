package services

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Page cursors encode the (created_at, id) position of the last row so
// the next page can resume the keyset scan. Opaque to clients.

func encodeCursor(createdAt time.Time, id int64) string {
	raw := fmt.Sprintf("%d|%d", createdAt.UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	return time.Unix(0, nanos), id, nil
}
