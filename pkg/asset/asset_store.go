package asset

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/internal/utils/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	imageExtension = ".jpeg"
	jpegQuality    = 75
	mirrorPrefix   = "recipes/"
)

var acceptedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
}

type (
	AssetStore interface {
		Store(ctx context.Context, recipeID string, payload string) error
		Exists(recipeID string) (string, bool)
		Dir() string
	}

	assetStore struct {
		dir    string
		mirror storage.AwsS3
	}
)

// NewAssetStore keeps normalized JPEG images under dir, one per recipe id.
// mirror may be nil.
func NewAssetStore(dir string, mirror storage.AwsS3) AssetStore {
	return &assetStore{
		dir:    dir,
		mirror: mirror,
	}
}

func FileName(recipeID string) string {
	return recipeID + imageExtension
}

func (s *assetStore) Dir() string {
	return s.dir
}

func (s *assetStore) Store(ctx context.Context, recipeID string, payload string) error {
	raw, err := decodePayload(payload)
	if err != nil {
		return err
	}

	img, err := decodeImage(raw)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("%w: encode jpeg: %w", domain.ErrImageIO, err)
	}

	if info, err := os.Stat(s.dir); err != nil || !info.IsDir() {
		log.Warnf("Images directory %s is missing", s.dir)
	}

	name := FileName(recipeID)
	if err := writeFileAtomic(s.dir, name, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrImageIO, err)
	}

	if s.mirror != nil {
		url, err := s.mirror.UploadFile(ctx, mirrorPrefix+name, buf.Bytes(), "image/jpeg")
		if err != nil {
			return fmt.Errorf("%w: mirror: %w", domain.ErrImageIO, err)
		}
		log.Debugf("Image for recipe %s mirrored to %s", recipeID, url)
	}

	return nil
}

func (s *assetStore) Exists(recipeID string) (string, bool) {
	name := FileName(recipeID)
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

// decodePayload accepts plain base64 or a data URL ("data:image/png;base64,...").
func decodePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		idx := strings.IndexByte(payload, ',')
		if idx < 0 {
			return nil, domain.ErrInvalidImageEncoding
		}
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImageEncoding, err)
	}
	return raw, nil
}

func decodeImage(raw []byte) (image.Image, error) {
	mtype := mimetype.Detect(raw)
	if !mimetype.EqualsAny(mtype.String(), acceptedMimeTypes...) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidImageFormat, mtype.String())
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImageFormat, err)
	}
	return img, nil
}

// writeFileAtomic writes to a temp file in dir and renames it into place so a
// partially written image is never visible under its final name.
func writeFileAtomic(dir, name string, data []byte) error {
	tmp := filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
