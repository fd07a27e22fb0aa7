package petfriends

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
)

const (
	photoParam       = "pet_photo"
	photoContentType = "image/jpeg"
)

// PhotoError reports a local photo file that could not be opened. No request is sent
// when it is returned.
type PhotoError struct {
	Path string
	Err  error
}

func (e *PhotoError) Error() string {
	return fmt.Sprintf("open pet photo %q: %v", e.Path, e.Err)
}

func (e *PhotoError) Unwrap() error { return e.Err }

// openPhoto opens path as a pet_photo part. The part is always declared image/jpeg;
// the server decides whether the payload is acceptable. Callers must close the file.
func openPhoto(path string) (*os.File, httpclient.Part, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, httpclient.Part{}, &PhotoError{Path: path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, httpclient.Part{}, &PhotoError{Path: path, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, httpclient.Part{}, &PhotoError{Path: path, Err: errors.New("is a directory")}
	}

	return file, httpclient.Part{
		Param:       photoParam,
		FileName:    filepath.Base(path),
		ContentType: photoContentType,
		Reader:      file,
	}, nil
}
