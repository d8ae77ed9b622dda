package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/storage"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/image/draw"
)

var ErrInvalidImage = errors.New("signature is not a valid base64 encoded PNG image")

// maxSignatureWidth bounds the stored signature; pads capture at device resolution.
const maxSignatureWidth = 800

type FileService interface {
	// UploadSignature decodes a base64 PNG (optionally a data URL), normalises
	// it and stores it under assinaturas/. ErrInvalidImage is returned for
	// undecodable payloads; storage failures are wrapped.
	UploadSignature(ctx context.Context, recordID, managerID, encoded string, at time.Time) (StoredFile, error)

	// UploadJustificationAttachment stores a justification's supporting document.
	UploadJustificationAttachment(ctx context.Context, employeeID string, file io.Reader, filename string, at time.Time) (string, error)

	DeleteFile(ctx context.Context, path string) error
}

// StoredFile describes an uploaded blob.
type StoredFile struct {
	Path   string
	Digest string
	Size   int
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadSignature implements FileService.
func (s *fileServiceImpl) UploadSignature(ctx context.Context, recordID, managerID, encoded string, at time.Time) (StoredFile, error) {
	raw, err := decodeSignature(encoded)
	if err != nil {
		return StoredFile{}, err
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return StoredFile{}, ErrInvalidImage
	}

	if img.Bounds().Dx() > maxSignatureWidth {
		bounds := img.Bounds()
		height := bounds.Dy() * maxSignatureWidth / bounds.Dx()
		if height < 1 {
			height = 1
		}
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, resizeImage(img, maxSignatureWidth, height)); err != nil {
			return StoredFile{}, fmt.Errorf("failed to encode signature: %w", err)
		}
		raw = buf.Bytes()
	}

	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(at.UTC().Format("2006-01-02T15:04:05.000Z"))
	filename := fmt.Sprintf("assinatura_%s_%s_%s.png", recordID, managerID, stamp)
	key := path.Join("assinaturas", filename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(raw), key, "image/png")
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to upload signature: %w", err)
	}

	sum := blake2b.Sum256(raw)
	return StoredFile{
		Path:   uploadedPath,
		Digest: hex.EncodeToString(sum[:]),
		Size:   len(raw),
	}, nil
}

// UploadJustificationAttachment implements FileService.
func (s *fileServiceImpl) UploadJustificationAttachment(ctx context.Context, employeeID string, file io.Reader, filename string, at time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := fmt.Sprintf("justificativa_%s_%d_%s%s", employeeID, at.UnixMilli(), uuid.New().String()[:8], ext)
	key := path.Join("justificativas", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload justification attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// ==================== HELPER FUNCTIONS ====================

func decodeSignature(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return nil, ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
