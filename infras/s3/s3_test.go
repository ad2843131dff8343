package s3

import (
	"bytes"
	"io"
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "hotel"

	svc := &s3Impl{Config: cfg}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/room/abc.png", want: "abc.png"},
		{name: "api endpoint", url: "https://s3.example.com/hotel/room/def.jpg", want: "def.jpg"},
		{name: "foreign url", url: "https://elsewhere.com/room/x.png", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL("room", tt.url))
		})
	}
}

func TestSniffContentType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	tests := []struct {
		name    string
		content []byte
		want    string
		wantErr error
	}{
		{name: "png", content: png, want: "image/png"},
		{name: "jpeg", content: []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), want: "image/jpeg"},
		{name: "text pretending to be an image", content: []byte("room 101 floor plan"), wantErr: ErrUnsupportedContent},
		{name: "empty", content: nil, wantErr: ErrUnsupportedContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := bytes.NewReader(tt.content)

			got, err := sniffContentType(file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			offset, _ := file.Seek(0, io.SeekCurrent)
			assert.Zero(t, offset)
		})
	}
}

func TestPublicURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"

	svc := &s3Impl{Config: cfg}

	assert.Equal(t, "https://cdn.example.com/room/abc.png", svc.publicURL("room/abc.png"))
}
