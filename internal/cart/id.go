package cart

import (
	"encoding/hex"

	"github.com/google/uuid"

	pkgerrors "github.com/subplatform/cart-backend/pkg/errors"
)

// Cart ids are 16 raw bytes in storage and 32 hex characters everywhere else.
// The encoding happens exactly once, at the service boundary.

const rawIDLen = 16

func newCartID() []byte {
	id := uuid.New()
	return id[:]
}

// EncodeCartID renders a storage id for external consumers.
func EncodeCartID(id []byte) string {
	return hex.EncodeToString(id)
}

// DecodeCartID parses an externally supplied cart id back into raw bytes.
func DecodeCartID(value string) ([]byte, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart id is not valid hex")
	}
	if len(raw) != rawIDLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id must be 16 bytes").
			WithDetails(map[string]any{"length": len(raw)})
	}
	return raw, nil
}
