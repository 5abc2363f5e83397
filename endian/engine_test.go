package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	probeBytes := (*[2]byte)(unsafe.Pointer(&probe))

	result := CheckEndianness()
	if probeBytes[0] == 0x01 {
		require.Equal(t, binary.BigEndian, result)
	} else {
		require.Equal(t, binary.LittleEndian, result)
	}
}

func TestNativePredicatesAreInverse(t *testing.T) {
	assert.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
	assert.Equal(t, IsNativeLittleEndian(), CheckEndianness() == binary.LittleEndian)
}

func TestEngineRoundTrip(t *testing.T) {
	engines := map[string]EndianEngine{
		"little-endian": GetLittleEndianEngine(),
		"big-endian":    GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			buf := make([]byte, 8)

			engine.PutUint16(buf[:2], 0xAC10)
			assert.Equal(t, uint16(0xAC10), engine.Uint16(buf[:2]))

			engine.PutUint32(buf[:4], 0xDEADBEEF)
			assert.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf[:4]))

			engine.PutUint64(buf, 0x0102030405060708)
			assert.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
		})
	}
}

func TestEnginesDisagreeOnByteOrder(t *testing.T) {
	le := make([]byte, 4)
	be := make([]byte, 4)

	GetLittleEndianEngine().PutUint32(le, 0x01020304)
	GetBigEndianEngine().PutUint32(be, 0x01020304)

	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, le)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be)
}

func TestEngineAppend(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint16(nil, 0x0102)
	buf = engine.AppendUint32(buf, 0x03040506)
	buf = engine.AppendUint64(buf, 0x0708090A0B0C0D0E)

	require.Len(t, buf, 14)
	assert.Equal(t, uint16(0x0102), engine.Uint16(buf[:2]))
	assert.Equal(t, uint32(0x03040506), engine.Uint32(buf[2:6]))
	assert.Equal(t, uint64(0x0708090A0B0C0D0E), engine.Uint64(buf[6:14]))
}

func TestCompareNativeEndian(t *testing.T) {
	if IsNativeLittleEndian() {
		assert.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		assert.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		assert.True(t, CompareNativeEndian(GetBigEndianEngine()))
		assert.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}
