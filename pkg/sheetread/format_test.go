package sheetread

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectFormatZip(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {})

	format, err := DetectFormat(buf)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)
}

func TestDetectFormatUnknown(t *testing.T) {
	for _, input := range [][]byte{nil, {}, []byte("PK"), []byte("<html></html>")} {
		format, err := DetectFormat(input)
		assert.Equal(t, Format(""), format)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownFormat), "input %q", input)
	}
}

func TestDetectFormatBrokenCompound(t *testing.T) {
	header := append([]byte{}, oleSignature...)
	header = append(header, make([]byte, 64)...)

	_, err := DetectFormat(header)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}
