package citybuf

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", []byte{}, ErrInvalidMagic},
		{"short", []byte("FCB"), ErrInvalidMagic},
		{"not citybuf", []byte("not a citybuf file"), ErrInvalidMagic},
		{"flatgeobuf", []byte{'f', 'g', 'b', 3, 'f', 'g', 'b', 0}, ErrInvalidMagic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewReader_MissingHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader(Magic[:]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = NewReader(bytes.NewReader(append(Magic[:], 1, 0)))
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestReader_Truncated(t *testing.T) {
	data, _ := convert(t, testMetadata+"\n"+tetrahedron+"\n", nil)

	r, err := NewReader(bytes.NewReader(data[:len(data)-5]))
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestReader_OversizedFrame(t *testing.T) {
	data := append([]byte(nil), Magic[:]...)
	data = binary.LittleEndian.AppendUint32(data, maxFrameSize+1)

	_, err := NewReader(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestReader_EOF(t *testing.T) {
	data, _ := convert(t, testMetadata+"\n", nil)

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.Header().FeaturesCount)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_File(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.city.fcb")

	var sb strings.Builder
	sb.WriteString(testMetadata + "\n")
	for _, id := range []string{"a", "b", "c"} {
		sb.WriteString(strings.Replace(tetrahedron, `"f1"`, `"`+id+`"`, 1) + "\n")
	}

	file, err := os.Create(tmpFile)
	require.NoError(t, err)
	_, err = Convert(context.Background(), strings.NewReader(sb.String()), file, nil)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	file, err = os.Open(tmpFile)
	require.NoError(t, err)
	defer file.Close()

	r, err := NewReader(file)
	require.NoError(t, err)
	assert.Equal(t, 1, r.FlatHeader().ColumnsLength())

	var ids []string
	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ids = append(ids, string(f.Id()))
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
