package service

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Cursors are opaque to clients: base64url("<unix micros>:<id>") of the last
// row on the previous page.

func encodeCursor(m *entity.Message) string {
	raw := strconv.FormatInt(m.CreatedAt.UnixMicro(), 10) + ":" + m.Id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (*specification.CreatedBefore, error) {
	invalid := apperror.Validation("invalid cursor", nil)

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, invalid
	}
	micros, idPart, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil, invalid
	}
	usec, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, invalid
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, invalid
	}

	return &specification.CreatedBefore{
		CreatedAt: time.UnixMicro(usec).UTC(),
		ID:        id,
	}, nil
}
