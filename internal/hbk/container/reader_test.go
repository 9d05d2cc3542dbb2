package container

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hex8(v int) []byte {
	return []byte(fmt.Sprintf("%08X", v))
}

func le32(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

// buildPrelude writes the 16+2-byte fixed prelude and the
// payload_size/block_size hex fields (patched once the file-info table's
// length is known), returning the buffer and the position of the
// payload_size field.
func buildPrelude() (buf []byte, payloadSizePos int) {
	buf = append(buf, make([]byte, 16)...)
	buf = append(buf, make([]byte, 2)...)
	payloadSizePos = len(buf)
	buf = append(buf, hex8(0)...)
	buf = append(buf, ' ')
	buf = append(buf, hex8(0)...)
	buf = append(buf, ' ')
	buf = append(buf, make([]byte, 11)...)
	return buf, payloadSizePos
}

// writeFileNameHeader appends a file-name header (as read by readFilename)
// at the buffer's current end and returns its start address.
func writeFileNameHeader(buf []byte, name string) (out []byte, addr int) {
	addr = len(buf)
	nameBytes := utf16le(name)
	payloadSize := len(nameBytes) + 24
	buf = append(buf, make([]byte, 2)...)
	buf = append(buf, hex8(payloadSize)...)
	buf = append(buf, ' ')
	buf = append(buf, make([]byte, 40)...)
	buf = append(buf, nameBytes...)
	return buf, addr
}

// writeSinglePageBlock appends a one-page block (as read by
// parseBlockHeader/readFileBody) holding body verbatim, and returns its
// start address.
func writeSinglePageBlock(buf []byte, body []byte) (out []byte, addr int) {
	addr = len(buf)
	buf = append(buf, make([]byte, 2)...)
	buf = append(buf, hex8(len(body))...)
	buf = append(buf, ' ')
	buf = append(buf, hex8(len(body))...)
	buf = append(buf, ' ')
	buf = append(buf, hex8(reservedMarker)...)
	buf = append(buf, make([]byte, 3)...)
	buf = append(buf, body...)
	return buf, addr
}

// buildContainer assembles a minimal synthetic HBK byte stream holding a
// single named file whose body fits on one page.
func buildContainer(name string, body []byte) []byte {
	buf, payloadSizePos := buildPrelude()

	fileInfoPos := len(buf)
	headerAddrPos := len(buf)
	buf = append(buf, le32(0)...)
	bodyAddrPos := len(buf)
	buf = append(buf, le32(0)...)
	buf = append(buf, le32(reservedMarker)...)
	payloadSize := len(buf) - fileInfoPos
	copy(buf[payloadSizePos:], hex8(payloadSize))

	buf, headerAddr := writeFileNameHeader(buf, name)
	buf, bodyAddr := writeSinglePageBlock(buf, body)

	copy(buf[headerAddrPos:], le32(int32(headerAddr)))
	copy(buf[bodyAddrPos:], le32(int32(bodyAddr)))
	return buf
}

func TestReadFilesDecodesSinglePageBody(t *testing.T) {
	data := buildContainer("PackBlock", []byte("HELLO-PACKBLOCK-BODY"))

	files, err := ReadFiles(data)
	require.NoError(t, err)
	require.Contains(t, files, "PackBlock")
	assert.Equal(t, []byte("HELLO-PACKBLOCK-BODY"), files["PackBlock"])
}

func TestReadFilesFollowsPageChain(t *testing.T) {
	buf, payloadSizePos := buildPrelude()

	fileInfoPos := len(buf)
	headerAddrPos := len(buf)
	buf = append(buf, le32(0)...)
	bodyAddrPos := len(buf)
	buf = append(buf, le32(0)...)
	buf = append(buf, le32(reservedMarker)...)
	payloadSize := len(buf) - fileInfoPos
	copy(buf[payloadSizePos:], hex8(payloadSize))

	buf, headerAddr := writeFileNameHeader(buf, "FileStorage")

	// Two-page chain: page 1 announces the total body size and the
	// address of page 2; page 2 is terminal.
	bodyAddr := len(buf)
	page1 := []byte("HELLO")
	page2 := []byte("WORLD")
	totalSize := len(page1) + len(page2)

	buf = append(buf, make([]byte, 2)...)
	buf = append(buf, hex8(totalSize)...)
	buf = append(buf, ' ')
	buf = append(buf, hex8(len(page1))...)
	buf = append(buf, ' ')
	nextPagePos := len(buf)
	buf = append(buf, hex8(0)...) // patched below
	buf = append(buf, make([]byte, 3)...)
	buf = append(buf, page1...)

	page2Addr := len(buf)
	buf = append(buf, make([]byte, 2)...)
	buf = append(buf, hex8(0)...) // dataSize unused on a non-terminal-owning page
	buf = append(buf, ' ')
	buf = append(buf, hex8(len(page2))...)
	buf = append(buf, ' ')
	buf = append(buf, hex8(reservedMarker)...)
	buf = append(buf, make([]byte, 3)...)
	buf = append(buf, page2...)

	copy(buf[nextPagePos:], hex8(page2Addr))
	copy(buf[headerAddrPos:], le32(int32(headerAddr)))
	copy(buf[bodyAddrPos:], le32(int32(bodyAddr)))

	files, err := ReadFiles(buf)
	require.NoError(t, err)
	require.Contains(t, files, "FileStorage")
	assert.Equal(t, []byte("HELLOWORLD"), files["FileStorage"])
}

func TestReadFilesRejectsTruncatedHeader(t *testing.T) {
	_, err := ReadFiles([]byte("too short"))
	assert.Error(t, err)
}

func TestReadFilesSkipsEntriesMissingReservedMarker(t *testing.T) {
	buf, payloadSizePos := buildPrelude()

	fileInfoPos := len(buf)
	buf = append(buf, le32(0)...) // headerAddr, never followed
	buf = append(buf, le32(0)...) // bodyAddr, never followed
	buf = append(buf, le32(0)...) // reserved field deliberately wrong
	payloadSize := len(buf) - fileInfoPos
	copy(buf[payloadSizePos:], hex8(payloadSize))

	files, err := ReadFiles(buf)
	require.NoError(t, err)
	assert.Empty(t, files)
}
