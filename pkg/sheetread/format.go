package sheetread

import (
	"bytes"
	"io"

	"github.com/richardlehane/mscfb"
)

var (
	zipSignature = []byte("PK\x03\x04")
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs the container format of buf.
// Zip archives are OOXML; OLE2 compound files are BIFF workbooks unless they
// wrap an encrypted OOXML package.
func DetectFormat(buf []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(buf, zipSignature):
		return FormatXLSX, nil
	case bytes.HasPrefix(buf, oleSignature):
		return detectCompound(buf)
	default:
		return "", newDecodeError(FormatAuto, ErrUnknownFormat)
	}
}

// detectCompound walks the OLE2 directory looking for a known stream.
func detectCompound(buf []byte) (Format, error) {
	doc, err := mscfb.New(bytes.NewReader(buf))
	if err != nil {
		return "", newDecodeError(FormatAuto, err)
	}

	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", newDecodeError(FormatAuto, err)
		}

		switch entry.Name {
		case "Workbook", "Book":
			return FormatXLS, nil
		case "EncryptedPackage":
			return FormatXLSX, nil
		}
	}

	return "", newDecodeError(FormatAuto, ErrUnknownFormat)
}
