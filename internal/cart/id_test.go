package cart

import (
	"testing"

	pkgerrors "github.com/subplatform/cart-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartIDRoundTrip(t *testing.T) {
	raw := newCartID()
	require.Len(t, raw, rawIDLen)

	encoded := EncodeCartID(raw)
	assert.Len(t, encoded, rawIDLen*2)

	decoded, err := DecodeCartID(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeCartIDRejectsBadInput(t *testing.T) {
	_, err := DecodeCartID("not-hex")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = DecodeCartID("abcd")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
