package tree

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func testElements(n int) [][]byte {
	elements := make([][]byte, n)
	for i := range elements {
		elements[i] = []byte(fmt.Sprintf("element-%d", i))
	}
	return elements
}

func TestHeight(t *testing.T) {
	cases := map[uint64]uint8{
		1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1024: 10, 1025: 11,
	}
	for n, expected := range cases {
		require.Equal(t, expected, Height(n), "numElements %d", n)
	}
}

func TestBuildRootEmpty(t *testing.T) {
	_, err := BuildRoot(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = BuildRoot([][]byte{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildRootSingleElement(t *testing.T) {
	element := common.FromHex("0xabcd")
	root, err := BuildRoot([][]byte{element})
	require.NoError(t, err)
	expected := crypto.Keccak256Hash(crypto.Keccak256(element), PaddingHash[:])
	require.Equal(t, expected, root)

	proof, err := GenerateProof([][]byte{element}, 0)
	require.NoError(t, err)
	require.Len(t, proof, 1)
	require.Equal(t, PaddingHash, proof[0])
	require.True(t, Verify(root, element, 0, proof))
}

func TestBuildRootKnownShapes(t *testing.T) {
	e := [][]byte{common.FromHex("0x1234"), common.FromHex("0x5678"), common.FromHex("0x9abc")}
	l0 := crypto.Keccak256(e[0])
	l1 := crypto.Keccak256(e[1])
	l2 := crypto.Keccak256(e[2])

	root, err := BuildRoot(e[:2])
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(l0, l1), root)

	root, err = BuildRoot(e)
	require.NoError(t, err)
	left := crypto.Keccak256(l0, l1)
	right := crypto.Keccak256(l2, PaddingHash[:])
	require.Equal(t, crypto.Keccak256Hash(left, right), root)
}

func TestBuildRootIsOrderSensitive(t *testing.T) {
	a, err := BuildRoot([][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)
	b, err := BuildRoot([][]byte{[]byte("b"), []byte("a")})
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyEveryIndex(t *testing.T) {
	for n := 1; n <= 17; n++ {
		elements := testElements(n)
		root, err := BuildRoot(elements)
		require.NoError(t, err)
		for i := range elements {
			proof, err := GenerateProof(elements, uint64(i))
			require.NoError(t, err)
			require.Len(t, proof, int(Height(uint64(n))))
			require.True(t, Verify(root, elements[i], uint64(i), proof), "n=%d i=%d", n, i)
		}
	}
}

func TestVerifyRejectsMutations(t *testing.T) {
	elements := testElements(6)
	root, err := BuildRoot(elements)
	require.NoError(t, err)
	for i := range elements {
		proof, err := GenerateProof(elements, uint64(i))
		require.NoError(t, err)

		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			require.False(t, Verify(root, []byte("forged"), uint64(i), proof))
			require.False(t, Verify(root, elements[i], uint64(i)^1, proof))
			for s := range proof {
				mutated := make([]common.Hash, len(proof))
				copy(mutated, proof)
				mutated[s][0] ^= 0xff
				require.False(t, Verify(root, elements[i], uint64(i), mutated), "sibling %d", s)
			}
			require.False(t, Verify(common.Hash{}, elements[i], uint64(i), proof))
		})
	}
}

func TestVerifyMalformedInputs(t *testing.T) {
	elements := testElements(4)
	root, err := BuildRoot(elements)
	require.NoError(t, err)
	proof, err := GenerateProof(elements, 1)
	require.NoError(t, err)

	require.False(t, Verify(root, elements[1], 1, nil))
	require.False(t, Verify(root, elements[1], 1, proof[:1]))
	require.False(t, Verify(root, elements[1], 1, append(proof, PaddingHash)))
	require.False(t, Verify(root, elements[1], 4, proof))
	require.False(t, Verify(root, elements[1], 1<<40, proof))
	require.False(t, Verify(root, elements[1], 1, make([]common.Hash, 65)))
}

func TestGenerateProofErrors(t *testing.T) {
	_, err := GenerateProof(nil, 0)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = GenerateProof(testElements(3), 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
