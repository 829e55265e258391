package storage

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUpload(t *testing.T, filename, contentType, content string) *model.Upload {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("file")
	require.NoError(t, err)

	return &model.Upload{File: file, Header: header}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestFileStore_Save(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		ctype    string
		kind     Kind
		wantErr  bool
		wantExt  string
	}{
		{name: "jpeg image by extension", filename: "photo.jpg", kind: KindImage, wantExt: ".jpg"},
		{name: "png image by content type", filename: "photo.bin", ctype: "image/png", kind: KindImage, wantExt: ".bin"},
		{name: "mp3 audio", filename: "sound.mp3", kind: KindAudio, wantExt: ".mp3"},
		{name: "audio rejected as image", filename: "sound.mp3", kind: KindImage, wantErr: true},
		{name: "image rejected as audio", filename: "photo.jpg", kind: KindAudio, wantErr: true},
		{name: "executable rejected", filename: "evil.exe", kind: KindImage, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := makeUpload(t, tt.filename, tt.ctype, "payload")
			name, err := store.Save(u, tt.kind)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, filepath.Ext(name))
			assert.NotEqual(t, tt.filename, name)

			data, err := os.ReadFile(store.Path(name))
			require.NoError(t, err)
			assert.Equal(t, "payload", string(data))
		})
	}
}

// closeTrackingFile stands in for a multipart.File so tests can observe
// whether Save released it.
type closeTrackingFile struct {
	*bytes.Reader
	closed bool
}

func (f *closeTrackingFile) Close() error {
	f.closed = true
	return nil
}

func TestFileStore_Save_ClosesUpload(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{name: "stored file", filename: "a.jpg"},
		{name: "rejected file", filename: "a.exe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &closeTrackingFile{Reader: bytes.NewReader([]byte("payload"))}
			u := &model.Upload{File: file, Header: &multipart.FileHeader{Filename: tt.filename}}

			_, err := store.Save(u, KindImage)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, file.closed)
		})
	}
}

func TestFileStore_Save_NilUpload(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(nil, KindImage)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestFileStore_Save_UniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(makeUpload(t, "a.jpg", "", "one"), KindImage)
	require.NoError(t, err)
	second, err := store.Save(makeUpload(t, "a.jpg", "", "two"), KindImage)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileStore_Remove(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(makeUpload(t, "a.jpg", "", "one"), KindImage)
	require.NoError(t, err)

	store.Remove(name)
	_, statErr := os.Stat(store.Path(name))
	assert.True(t, os.IsNotExist(statErr))

	// Removing again or removing the empty name must not panic.
	store.Remove(name)
	store.Remove("")
}

func TestFileStore_RemoveAll(t *testing.T) {
	store := newTestStore(t)

	a, err := store.Save(makeUpload(t, "a.jpg", "", "one"), KindImage)
	require.NoError(t, err)
	b, err := store.Save(makeUpload(t, "b.mp3", "", "two"), KindAudio)
	require.NoError(t, err)

	store.RemoveAll(a, "", b, "missing.jpg")

	_, errA := os.Stat(store.Path(a))
	_, errB := os.Stat(store.Path(b))
	assert.True(t, os.IsNotExist(errA))
	assert.True(t, os.IsNotExist(errB))
}
