package audio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// extensionFromFileType returns the file extension for tag.FileType.
func extensionFromFileType(ft tag.FileType) string {
	switch ft {
	case tag.FLAC:
		return "flac"
	case tag.MP3:
		return "mp3"
	case tag.OGG:
		return "ogg"
	case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
		return "m4a"
	case tag.DSF:
		return "dsf"
	default:
		return ""
	}
}

// Identify reads from r and returns the detected audio extension.
// RIFF/WAVE is recognised from its magic bytes since tag does not sniff it.
// The reader is rewound before returning.
func Identify(r io.ReadSeeker) (string, error) {
	defer r.Seek(0, io.SeekStart)

	magic := make([]byte, 12)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if n == 12 && bytes.Equal(magic[0:4], []byte("RIFF")) && bytes.Equal(magic[8:12], []byte("WAVE")) {
		return "wav", nil
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	_, fileType, err := tag.Identify(r)
	if err != nil || fileType == tag.UnknownFileType {
		return "", err
	}
	return extensionFromFileType(fileType), nil
}

// UploadExtension picks the suffix for a persisted upload: the sniffed
// container first, then the client supplied filename, then "bin".
func UploadExtension(r io.ReadSeeker, filename string) string {
	if ext, err := Identify(r); err == nil && ext != "" {
		return "." + ext
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	return ".bin"
}
