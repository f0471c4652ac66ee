package predict

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatOf picks the codec from the file extension: .msgpack or .mp use msgpack, anything else JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

func Decode(r io.Reader, format Format) (*Bundle, error) {
	var b Bundle
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&b)
	default:
		err = json.NewDecoder(r).Decode(&b)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s model bundle", format)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func Encode(w io.Writer, b *Bundle, format Format) error {
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.NewEncoder(w).Encode(b)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(b)
	}
	return errors.Wrapf(err, "encode %s model bundle", format)
}

// Load reads a bundle from path. A missing file is reported with an error satisfying os.IsNotExist
// after errors.Cause.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Decode(f, FormatOf(path))
}

func Save(path string, b *Bundle) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b, FormatOf(path)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(os.WriteFile(path, buf.Bytes(), 0o644))
}
