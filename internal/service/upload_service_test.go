package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/relearn-next/internal/config"
	"github.com/relearn-next/internal/constants"
)

func newUploadTestService(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(&config.Config{
		Upload: config.UploadConfig{
			Dir:               t.TempDir(),
			MaxSize:           1 << 20,
			AllowedTypes:      []string{"image/png", "image/jpeg"},
			AllowedExtensions: []string{".png", ".jpg", ".jpeg"},
		},
	})
}

func newUploadFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(4 << 20); err != nil {
		t.Fatalf("parse multipart form failed: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

// PNG 签名足以通过内容嗅探，无需任何解码器参与
func TestUploadSaveFileAcceptsPNGBySniffing(t *testing.T) {
	svc := newUploadTestService(t)
	content := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

	path, err := svc.SaveFile(newUploadFileHeader(t, "receipt.png", content), constants.UploadSceneVoucher)
	if err != nil {
		t.Fatalf("save png failed: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/"+constants.UploadSceneVoucher+"/") {
		t.Fatalf("unexpected relative path: %s", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("saved file should keep extension: %s", path)
	}

	saved, err := svc.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file failed: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Fatalf("saved content mismatch: %d bytes", len(saved))
	}
}

func TestUploadSaveFileRejectsMismatchedContent(t *testing.T) {
	svc := newUploadTestService(t)

	// 扩展名合法但内容是纯文本，按嗅探出的 MIME 拒绝
	header := newUploadFileHeader(t, "fake.png", []byte("plain text pretending to be an image"))
	if _, err := svc.SaveFile(header, constants.UploadSceneVoucher); !errors.Is(err, ErrUploadFileType) {
		t.Fatalf("expected upload file type error, got %v", err)
	}

	header = newUploadFileHeader(t, "notes.txt", []byte("plain text"))
	if _, err := svc.SaveFile(header, constants.UploadSceneVoucher); !errors.Is(err, ErrUploadFileType) {
		t.Fatalf("expected upload file type error for extension, got %v", err)
	}
}
