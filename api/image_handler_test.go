package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartUpload builds a multipart request body with one file part
// under the given field name and an explicit content type.
func multipartUpload(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func doUpload(t *testing.T, router http.Handler, token, field, filename, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	body, formContentType := multipartUpload(t, field, filename, contentType, "image bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/projects/upload", body)
	req.Header.Set("Content-Type", formContentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadImage(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		router, _ := newTestRouter(t, `[]`)
		rec := doUpload(t, router, "", "image", "shot.png", "image/png")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stores the file and returns the logical name", func(t *testing.T) {
		router, st := newTestRouter(t, `[]`)
		rec := doUpload(t, router, adminToken(t), "image", "my shot.png", "image/png")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		logical := data["filename"].(string)
		require.NotEmpty(t, logical)
		assert.Equal(t, "my shot.png", data["originalName"])

		// The logical name resolves to the stored asset
		_, err := st.ImageRepo().Resolve(logical)
		assert.NoError(t, err)
	})

	t.Run("rejects disallowed MIME types", func(t *testing.T) {
		router, _ := newTestRouter(t, `[]`)
		rec := doUpload(t, router, adminToken(t), "image", "script.png", "application/javascript")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects wrong field name", func(t *testing.T) {
		router, _ := newTestRouter(t, `[]`)
		rec := doUpload(t, router, adminToken(t), "file", "shot.png", "image/png")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListImages(t *testing.T) {
	router, st := newTestRouter(t, `[]`)

	t.Run("empty before any upload", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/projects/images/list", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, float64(0), body["total"])
	})

	t.Run("lists uploaded files", func(t *testing.T) {
		rec := doUpload(t, router, adminToken(t), "image", "banner.jpg", "image/jpeg")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/projects/images/list", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["total"])

		images, err := st.ImageRepo().List()
		require.NoError(t, err)
		require.Len(t, images, 1)
	})
}

func TestDeleteImage(t *testing.T) {
	router, _ := newTestRouter(t, `[]`)

	rec := doUpload(t, router, adminToken(t), "image", "temp.gif", "image/gif")
	require.Equal(t, http.StatusOK, rec.Code)
	logical := decodeBody(t, rec)["data"].(map[string]interface{})["filename"].(string)

	t.Run("requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/projects/images/"+logical, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("deletes by logical name", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodDelete, "/api/projects/images/"+logical, adminToken(t), nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody(t, recorder)
		assert.Equal(t, logical, body["data"].(map[string]interface{})["filename"])
	})

	t.Run("404 when already gone", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodDelete, "/api/projects/images/"+logical, adminToken(t), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
