package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifaleee/MetroArt/internal/upload"
)

const maxBytes = 5 * 1024 * 1024

// multipartRequest builds a POST request with optional text fields and a
// single file part carrying an explicit Content-Type.
func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", "Sunset"))

	if field != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/art", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestIntake(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4}

	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		required bool
		wantErr  error
	}{
		{
			name: "valid png",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "artImage", "sunset.png", "image/png", png)
			},
			required: true,
		},
		{
			name: "valid gif",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "artImage", "loop.gif", "image/gif", png)
			},
			required: true,
		},
		{
			name: "text/plain rejected before buffering",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "artImage", "notes.txt", "text/plain", []byte("not an image"))
			},
			required: true,
			wantErr:  upload.ErrInvalidMediaType,
		},
		{
			name: "svg rejected",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "artImage", "vec.svg", "image/svg+xml", png)
			},
			required: true,
			wantErr:  upload.ErrInvalidMediaType,
		},
		{
			name: "6 MiB file over 5 MiB cap",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "artImage", "huge.png", "image/png", make([]byte, 6*1024*1024))
			},
			required: true,
			wantErr:  upload.ErrPayloadTooLarge,
		},
		{
			name: "missing file on create",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "", "", "", nil)
			},
			required: true,
			wantErr:  upload.ErrMissingFile,
		},
		{
			name: "non-multipart body on create",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/art", bytes.NewBufferString(`{"title":"x"}`))
			},
			required: true,
			wantErr:  upload.ErrMissingFile,
		},
		{
			name: "wrong field name",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "picture", "sunset.png", "image/png", png)
			},
			required: true,
			wantErr:  upload.ErrMissingFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := upload.Intake(tt.req(t), "artImage", tt.required, maxBytes)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, asset)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, asset)
			assert.Equal(t, png, asset.Bytes)
			assert.NotEmpty(t, asset.MimeType)
			assert.NotEmpty(t, asset.OriginalName)
		})
	}
}

func TestIntakeOptionalFile(t *testing.T) {
	// Metadata-only updates carry no file part; that is not an error.
	asset, err := upload.Intake(multipartRequest(t, "", "", "", nil), "artImage", false, maxBytes)
	require.NoError(t, err)
	assert.Nil(t, asset)
}

func TestIntakeSizeLimitExcludesExactCap(t *testing.T) {
	// A file of exactly maxBytes is allowed; one byte more is not.
	small := int64(1024)
	data := make([]byte, small)

	asset, err := upload.Intake(
		multipartRequest(t, "artImage", "ok.png", "image/png", data), "artImage", true, small)
	require.NoError(t, err)
	assert.Len(t, asset.Bytes, int(small))

	_, err = upload.Intake(
		multipartRequest(t, "artImage", "big.png", "image/png", make([]byte, small+1)), "artImage", true, small)
	require.ErrorIs(t, err, upload.ErrPayloadTooLarge)
}
