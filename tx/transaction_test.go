package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func buildTestTx(t *testing.T) *Transaction {
	t.Helper()
	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	return NewBuilder().
		ChainTag(0x4a).
		BlockRef(BlockRef(common.HexToHash("0x00634b0a00639837deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"))).
		Expiration(720).
		Clause(NewClause(&to, big.NewInt(1000), nil)).
		GasPriceCoef(0).
		Gas(21000).
		Nonce(0xdeadbeef).
		Build()
}

func TestSigningHashStable(t *testing.T) {
	trx := buildTestTx(t)

	h1, err := trx.SigningHash()
	require.NoError(t, err)
	h2, err := trx.SigningHash()
	require.NoError(t, err)
	require.Equal(t, h1, h2)

	other := NewBuilder().ChainTag(0x4b).Gas(21000).Build()
	h3, err := other.SigningHash()
	require.NoError(t, err)
	require.NotEqual(t, h1, h3)
}

func TestSignAndRecoverOrigin(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	trx := buildTestTx(t)
	signingHash, err := trx.SigningHash()
	require.NoError(t, err)

	sig, err := crypto.Sign(signingHash[:], key)
	require.NoError(t, err)

	signed, err := trx.WithSignature(sig)
	require.NoError(t, err)

	origin, err := signed.Origin()
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), origin)

	// The original transaction stays unsigned.
	require.Empty(t, trx.Signature())
}

func TestIDBoundToSigner(t *testing.T) {
	keyA, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyB, err := crypto.GenerateKey()
	require.NoError(t, err)

	trx := buildTestTx(t)
	signingHash, err := trx.SigningHash()
	require.NoError(t, err)

	sigA, err := crypto.Sign(signingHash[:], keyA)
	require.NoError(t, err)
	sigB, err := crypto.Sign(signingHash[:], keyB)
	require.NoError(t, err)

	signedA, err := trx.WithSignature(sigA)
	require.NoError(t, err)
	signedB, err := trx.WithSignature(sigB)
	require.NoError(t, err)

	idA, err := signedA.ID()
	require.NoError(t, err)
	idB, err := signedB.ID()
	require.NoError(t, err)
	require.NotEqual(t, idA, idB, "same body signed by different keys must yield different ids")
}

func TestEncodeRequiresSignature(t *testing.T) {
	trx := buildTestTx(t)
	_, err := trx.Encode()
	require.Error(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signingHash, err := trx.SigningHash()
	require.NoError(t, err)
	sig, err := crypto.Sign(signingHash[:], key)
	require.NoError(t, err)

	signed, err := trx.WithSignature(sig)
	require.NoError(t, err)

	raw, err := signed.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	again, err := signed.Encode()
	require.NoError(t, err)
	require.Equal(t, raw, again)
}

func TestWithSignatureRejectsBadLength(t *testing.T) {
	trx := buildTestTx(t)
	_, err := trx.WithSignature([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestBlockRef(t *testing.T) {
	id := common.HexToHash("0x00634b0affffffff0000000000000000000000000000000000000000000000aa")
	require.Equal(t, uint64(0x00634b0affffffff), BlockRef(id))
}

func TestClauseDefaults(t *testing.T) {
	c := NewClause(nil, nil, nil)
	require.NotNil(t, c.Value)
	require.Zero(t, c.Value.Sign())
	require.Nil(t, c.To)

	call := c.AsCall()
	require.Nil(t, call.To)
}
