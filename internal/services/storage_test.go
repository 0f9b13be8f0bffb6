package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resumes", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["resumes"][0]
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir)

	header := multipartFileHeader(t, "resume.pdf", "pdf-bytes")

	filename, path, err := svc.SaveFile(header, "resume")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "resume_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, filepath.Join(dir, filename), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(saved))
}

func TestSaveFileRejectsUnsupportedExtension(t *testing.T) {
	svc := NewStorageService(t.TempDir())

	header := multipartFileHeader(t, "resume.exe", "binary")

	_, _, err := svc.SaveFile(header, "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestGetFilePathAndDelete(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir)

	header := multipartFileHeader(t, "resume.txt", "text")
	filename, path, err := svc.SaveFile(header, "resume")
	require.NoError(t, err)

	assert.Equal(t, path, svc.GetFilePath(filename))

	require.NoError(t, svc.DeleteFile(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.Error(t, svc.DeleteFile(filename))
}

func TestEnsureUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	svc := NewStorageService(dir)

	require.NoError(t, svc.EnsureUploadDir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
