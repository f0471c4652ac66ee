package infra

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"exusiai.dev/autodash/internal/app/appconfig"
)

var ErrSourceNotFound = errors.New("dataset source not found")

type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeHTTP  Scheme = "http"
	SchemeS3    Scheme = "s3"
	userAgent          = "autodash-source/1.0"
	maxBodySize        = 256 << 20
)

// Location is a parsed dataset location: a local path, an http(s) URL or s3://bucket/key.
type Location struct {
	Scheme Scheme
	// Raw is the location as configured.
	Raw string
	// Bucket and Key are only set for SchemeS3.
	Bucket string
	Key    string
}

func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, errors.New("empty dataset location")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// plain paths, including windows drive letters
		return Location{Scheme: SchemeFile, Raw: raw}, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return Location{Scheme: SchemeFile, Raw: u.Path}, nil
	case "http", "https":
		return Location{Scheme: SchemeHTTP, Raw: raw}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, errors.Errorf("s3 location %q must look like s3://bucket/key", raw)
		}
		return Location{Scheme: SchemeS3, Raw: raw, Bucket: u.Host, Key: key}, nil
	default:
		return Location{}, errors.Errorf("unsupported dataset location scheme %q", u.Scheme)
	}
}

// Source fetches whole datasets from their configured locations.
type Source struct {
	conf *appconfig.Config

	http *fasthttp.Client

	s3Once   sync.Once
	s3Client *s3.Client
	s3Err    error
}

func NewSource(conf *appconfig.Config) *Source {
	return &Source{
		conf: conf,
		http: &fasthttp.Client{
			Name:                userAgent,
			MaxResponseBodySize: maxBodySize,
		},
	}
}

// Fetch reads the whole dataset at location into memory. Remote fetches are bounded by
// SourceFetchTimeout.
func (s *Source) Fetch(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("evt.name", "source.fetch").Str("scheme", string(loc.Scheme)).Str("location", loc.Raw).Msg("fetching dataset")

	switch loc.Scheme {
	case SchemeHTTP:
		return s.fetchHTTP(loc)
	case SchemeS3:
		ctx, cancel := context.WithTimeout(ctx, s.conf.SourceFetchTimeout)
		defer cancel()
		return s.fetchS3(ctx, loc)
	default:
		b, err := os.ReadFile(loc.Raw)
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrSourceNotFound, loc.Raw)
		}
		return b, errors.Wrapf(err, "read %s", loc.Raw)
	}
}

// Open is Fetch as a reader.
func (s *Source) Open(ctx context.Context, location string) (io.Reader, error) {
	b, err := s.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

func (s *Source) fetchHTTP(loc Location) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(loc.Raw)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := s.http.DoTimeout(req, resp, s.conf.SourceFetchTimeout); err != nil {
		return nil, errors.Wrapf(err, "fetch %s", loc.Raw)
	}
	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return nil, errors.Wrap(ErrSourceNotFound, loc.Raw)
	case status != fasthttp.StatusOK:
		return nil, errors.Errorf("fetch %s: unexpected status %d", loc.Raw, status)
	}

	// the response body is only valid until the response is released
	return append([]byte(nil), resp.Body()...), nil
}

func (s *Source) s3Conn(ctx context.Context) (*s3.Client, error) {
	s.s3Once.Do(func() {
		opts := []func(*config.LoadOptions) error{config.WithRegion(s.conf.AWSRegion)}
		if s.conf.AWSAccessKey != "" && s.conf.AWSSecretKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s.conf.AWSAccessKey, s.conf.AWSSecretKey, "")))
		}
		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			s.s3Err = errors.Wrap(err, "failed to load aws config")
			return
		}
		s.s3Client = s3.NewFromConfig(cfg)
	})
	return s.s3Client, s.s3Err
}

func (s *Source) fetchS3(ctx context.Context, loc Location) ([]byte, error) {
	client, err := s.s3Conn(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && (ae.ErrorCode() == "NoSuchKey" || ae.ErrorCode() == "NotFound") {
			return nil, errors.Wrap(ErrSourceNotFound, loc.Raw)
		}
		return nil, errors.Wrapf(err, "failed to invoke GetObject for %s", loc.Raw)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	return b, errors.Wrapf(err, "read %s", loc.Raw)
}
