package predict

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("data/model.json"))
	assert.Equal(t, FormatMsgpack, FormatOf("model.MSGPACK"))
	assert.Equal(t, FormatJSON, FormatOf("model"))
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, testBundle(), format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, testBundle(), got)
		})
	}
}

func TestDecodeRejectsInvalidBundle(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"features":["Voltage"],"regressor":{"weights":[]}}`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{`), FormatJSON)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "model.msgpack")
	require.NoError(t, Save(path, testBundle()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testBundle(), got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
