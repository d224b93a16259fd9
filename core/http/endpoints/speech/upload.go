package speech

import (
	"mime/multipart"

	"github.com/phonolab/phonolab/pkg/audio"
	"github.com/phonolab/phonolab/pkg/utils"
)

// saveUpload persists an uploaded file into scope, naming it after the
// detected container so the transcoder can pick the right demuxer.
func saveUpload(fh *multipart.FileHeader, scope *utils.TempScope) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := audio.UploadExtension(src, fh.Filename)
	return scope.Save(src, ext)
}
