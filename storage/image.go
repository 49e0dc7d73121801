package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	_ "image/jpeg"
	_ "image/png"

	"chirper/domain"
	"chirper/errs"
)

// MaxUploadSize determines the maximum filesize of an image to be uploaded.
const MaxUploadSize int64 = 5 << 20 // 5 Megabyte

// ImageService stores uploaded images as files in the filesystem, under a
// directory derived from the owning record (images/tweet/2/, images/user/1/).
// It implements the domain.ImageService interface.
type ImageService struct {
	imageValidator
}

// imageValidator runs validations and normalizations on incoming uploads.
// On success, it passes the data on to imageFS.
type imageValidator struct {
	imageFS
}

// imageFS does the actual file reads and writes.
type imageFS struct{}

// NewImageService returns an instance of ImageService.
func NewImageService() *ImageService {
	return &ImageService{
		imageValidator{
			imageFS{},
		},
	}
}

// Ensure the ImageService struct properly implements the domain.ImageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ImageService = &ImageService{}

// Create runs validations needed for storing a new image file.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.extensionValid,
		iv.contentTypeValid,
		iv.contentTypeExtensionMatch,
		iv.belowMaxSize,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageFS.Create(img)
}

// A imageValFn is any function that takes in a pointer to a domain.Image object and returns an error.
type imageValFn func(img *domain.Image) error

// runImageValFns runs any number of functions of type imageValFn on the passed in Image object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

// belowMaxSize makes sure the upload does not exceed MaxUploadSize.
func (iv *imageValidator) belowMaxSize(img *domain.Image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetReaderPosition(img); err != nil {
		return err
	}
	if size > MaxUploadSize {
		return errs.Errorf(errs.EINVALID,
			"Image %s exceeds upload size limit of %dMB.", img.Filename, MaxUploadSize/1000000)
	}
	img.Size = size
	return nil
}

// contentTypeValid sniffs the upload's real content type and makes sure it's
// a jpeg or png, whatever the file claims to be called.
func (iv *imageValidator) contentTypeValid(img *domain.Image) error {
	buffer := make([]byte, 512)
	if _, err := img.File.Read(buffer); err != nil {
		return err
	}
	if err := resetReaderPosition(img); err != nil {
		return err
	}
	contentType := http.DetectContentType(buffer)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return errs.Errorf(errs.EINVALID,
			"Image %s has an invalid content type, must be image/jpeg or image/png.", img.Filename)
	}
	img.ContentType = contentType
	return nil
}

// contentTypeExtensionMatch makes sure the filename extension agrees with the
// sniffed content type.
func (iv *imageValidator) contentTypeExtensionMatch(img *domain.Image) error {
	if img.ContentType != "image/"+strings.TrimPrefix(img.Extension, ".") {
		return errs.Errorf(errs.EINVALID,
			"Image %s extension does not match its content type.", img.Filename)
	}
	return nil
}

// extensionValid makes sure the filename carries a jpeg or png extension,
// normalizing .jpg to .jpeg.
func (iv *imageValidator) extensionValid(img *domain.Image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return errs.Errorf(errs.EINVALID,
			"Image %s has an invalid extension, must be .jpeg or .png.", img.Filename)
	}
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	img.Extension = ext
	return nil
}

// fileNameUnique renames the upload to a uuid so files can never collide
// within their owner's directory.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	img.Filename = uuid.NewString() + img.Extension
	return nil
}

// resetReaderPosition seeks back to the beginning of the file, so that
// subsequent reads will work.
func resetReaderPosition(img *domain.Image) error {
	_, err := img.File.Seek(0, io.SeekStart)
	return err
}

// Create writes the upload to its owner's directory.
func (ifs *imageFS) Create(img *domain.Image) error {
	path, err := ifs.mkImagePath(img.OwnerType, img.OwnerID)
	if err != nil {
		return err
	}
	dst, err := os.Create(path + img.Filename)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err = io.Copy(dst, img.File); err != nil {
		return err
	}
	return nil
}

// ByOwner returns all images stored for the given owner.
func (ifs *imageFS) ByOwner(ownerType string, ownerID int) ([]domain.Image, error) {
	path := ifs.imagePath(ownerType, ownerID)
	files, err := filepath.Glob(path + "*")
	if err != nil {
		return nil, err
	}
	ret := make([]domain.Image, len(files))
	for i := range ret {
		ret[i] = domain.Image{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			Filename:  strings.Replace(files[i], path, "", 1),
		}
		ret[i].URL = ret[i].Path()
	}
	return ret, nil
}

// Delete removes an image file from the filesystem.
func (ifs *imageFS) Delete(i *domain.Image) error {
	return os.Remove(i.RelativePath())
}

// mkImagePath creates the owner's image directory if necessary.
func (ifs *imageFS) mkImagePath(ownerType string, ownerID int) (string, error) {
	imagePath := ifs.imagePath(ownerType, ownerID)
	if err := os.MkdirAll(imagePath, 0755); err != nil {
		return "", err
	}
	return imagePath, nil
}

// imagePath returns the directory images of the given owner are stored in.
func (ifs *imageFS) imagePath(ownerType string, ownerID int) string {
	return fmt.Sprintf("%v/%v/%v/", domain.ImagesBaseDir, ownerType, ownerID)
}
