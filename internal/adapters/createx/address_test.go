package createx

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	factory = common.HexToAddress("0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed")
	sender  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func mustSalt(t *testing.T, hex string) domain.Salt {
	t.Helper()
	s, err := domain.ParseSalt(hex)
	require.NoError(t, err)
	return s
}

func TestCreate3ProxyCodeHash(t *testing.T) {
	assert.Equal(t, common.HexToHash("0x21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f"), common.BytesToHash(create3ProxyCodeHash))
}

func TestGuardedSalt(t *testing.T) {
	tests := []struct {
		name    string
		salt    string
		chainID uint64
		want    string
	}{
		{
			name:    "permissioned without redeploy protection",
			salt:    "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266000000000000000000000001",
			chainID: 31337,
			want:    "0x9affd829c67f312b518572d8febcc364cc9d918e55bdefd2b75c21be0172915d",
		},
		{
			name:    "permissioned with redeploy protection",
			salt:    "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266010000000000000000000001",
			chainID: 1,
			want:    "0xe29988b61033283094b4f665d539caf04af72904c7201b7a58c10d94f10ab735",
		},
		{
			name:    "zero address with redeploy protection",
			salt:    "0x0000000000000000000000000000000000000000010000000000000000000007",
			chainID: 31337,
			want:    "0xf86c91caef892f87b5c3ee652cb95678b6e21ff90d66e7ff4cee5f7c277a027e",
		},
		{
			name:    "unrelated prefix is hashed",
			salt:    "0x1111111111111111111111111111111111111111111111111111111111111111",
			chainID: 31337,
			want:    "0xb569321de72d0af89c2fb48a484de3fc9343f31600ae1f3e13d633cb48cbf816",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuardedSalt(sender, tt.chainID, mustSalt(t, tt.salt))
			require.NoError(t, err)
			assert.Equal(t, common.HexToHash(tt.want), got)
		})
	}
}

func TestGuardedSaltInvalid(t *testing.T) {
	_, err := GuardedSalt(sender, 1, mustSalt(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266020000000000000000000001"))
	assert.ErrorIs(t, err, domain.ErrInvalidSalt)

	_, err = GuardedSalt(sender, 1, mustSalt(t, "0x0000000000000000000000000000000000000000ff0000000000000000000001"))
	assert.ErrorIs(t, err, domain.ErrInvalidSalt)
}

func TestPredictAddress(t *testing.T) {
	salt := mustSalt(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266000000000000000000000001")

	got, err := PredictAddress(factory, sender, 31337, salt)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xde4af5323be5c0c35a16b988250d3029cf5ef5da"), got)

	// without redeploy protection the chain does not matter
	other, err := PredictAddress(factory, sender, 1, salt)
	require.NoError(t, err)
	assert.Equal(t, got, other)

	protected := mustSalt(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266010000000000000000000001")
	mainnet, err := PredictAddress(factory, sender, 1, protected)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x940802a57e170e33b690ad5be0d67abe7efda415"), mainnet)
	local, err := PredictAddress(factory, sender, 31337, protected)
	require.NoError(t, err)
	assert.NotEqual(t, mainnet, local)
}

func TestSaltFromEntropyLayout(t *testing.T) {
	salt := domain.SaltFromEntropy(sender, "default/Pools")
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb9226600575bb87a36cb76f39c410c", salt.Hex())
}
