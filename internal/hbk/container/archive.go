package container

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"

	"catalogd/internal/catalogerr"
	"golang.org/x/text/encoding/unicode"
)

// Archive is an opened HBK container: the decompressed TOC bytes plus a
// path-indexed reader over the FileStorage region's HTML pages.
type Archive struct {
	TOCBytes []byte

	pages    *zip.Reader
	pageBody *bytes.Reader
	names    map[string]string // lowercased normalized path -> actual zip entry name
}

// Open reads path as an HBK container and decompresses its two named
// regions. PackBlock and FileStorage are themselves ZIP archives (the
// container's own "page chain" framing wraps them); the first PackBlock
// entry is the bracket-format TOC, and every FileStorage entry is one HTML
// documentation page.
func Open(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, catalogerr.Wrap(err, catalogerr.CodeCorruptContainer, "reading HBK file")
	}
	return OpenBytes(data)
}

// OpenBytes is Open over an in-memory container, used directly by tests
// and by callers that already hold the file contents.
func OpenBytes(data []byte) (*Archive, error) {
	files, err := ReadFiles(data)
	if err != nil {
		return nil, err
	}

	packBlock, ok := files["PackBlock"]
	if !ok {
		return nil, catalogerr.New(catalogerr.CodeCorruptContainer, "PackBlock region missing from container")
	}
	fileStorage, ok := files["FileStorage"]
	if !ok {
		return nil, catalogerr.New(catalogerr.CodeCorruptContainer, "FileStorage region missing from container")
	}

	tocBytes, err := inflateFirstEntry(packBlock)
	if err != nil {
		return nil, catalogerr.Wrap(err, catalogerr.CodeCorruptContainer, "inflating PackBlock")
	}

	pageReader := bytes.NewReader(fileStorage)
	pagesZip, err := zip.NewReader(pageReader, int64(len(fileStorage)))
	if err != nil {
		return nil, catalogerr.Wrap(err, catalogerr.CodeCorruptContainer, "opening FileStorage archive")
	}

	names := make(map[string]string, len(pagesZip.File))
	for _, f := range pagesZip.File {
		names[strings.ToLower(normalizePath(f.Name))] = f.Name
	}

	return &Archive{
		TOCBytes: tocBytes,
		pages:    pagesZip,
		pageBody: pageReader,
		names:    names,
	}, nil
}

// inflateFirstEntry opens data as a ZIP archive and returns the raw bytes
// of its first entry, the shape PackBlock's wrapped bracket file takes.
func inflateFirstEntry(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, catalogerr.New(catalogerr.CodeCorruptContainer, "PackBlock archive is empty")
	}
	rc, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// normalizePath strips a leading path separator and normalizes backslashes,
// per §4.1: TOC entries address pages with a leading "/"; archive entries
// do not.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimLeft(p, "/")
}

// ReadPage returns the decoded text of the HTML page at path, or
// ("", false) if the container has no such entry. Lookup is
// case-insensitive, matching 1C's historically lax archive tooling.
func (a *Archive) ReadPage(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	normalized := strings.ToLower(normalizePath(path))
	actual, ok := a.names[normalized]
	if !ok {
		return "", false
	}

	f, err := findZipFile(a.pages, actual)
	if err != nil || f == nil {
		return "", false
	}
	rc, err := f.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", false
	}
	return decodePageText(raw), true
}

func findZipFile(r *zip.Reader, name string) (*zip.File, error) {
	for _, f := range r.File {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, nil
}

// decodePageText transcodes an archived HTML page. Pages are documented as
// UTF-16LE (§6); a byte-order-mark or a dense run of NUL bytes in the
// plausible ASCII-text positions both confirm it. Anything else is treated
// as UTF-8, which some exported/legacy containers use directly.
func decodePageText(raw []byte) string {
	if looksUTF16LE(raw) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := decoder.Bytes(raw)
		if err == nil {
			return string(out)
		}
	}
	return string(raw)
}

func looksUTF16LE(raw []byte) bool {
	if len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE {
		return true
	}
	if len(raw) < 4 {
		return false
	}
	sample := raw
	if len(sample) > 200 {
		sample = sample[:200]
	}
	zeros := 0
	for i := 1; i < len(sample); i += 2 {
		if sample[i] == 0x00 {
			zeros++
		}
	}
	return zeros > len(sample)/4
}
