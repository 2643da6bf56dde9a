// Package picker selects the artifact a student submits: a file on disk for
// video, audio and document kinds, or typed text.
package picker

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/naveenspark/hackboard/pkg/domain"
)

// FileFilter restricts which files a kind accepts. A file must match both an
// extension and a MIME prefix.
type FileFilter struct {
	Extensions   []string
	MIMEPrefixes []string
}

var filters = map[domain.ArtifactKind]FileFilter{
	domain.KindVideo: {
		Extensions:   []string{".mp4", ".mov", ".webm", ".mkv", ".avi", ".m4v"},
		MIMEPrefixes: []string{"video/"},
	},
	domain.KindAudio: {
		Extensions:   []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".aac", ".webm"},
		MIMEPrefixes: []string{"audio/", "video/webm"},
	},
	domain.KindDocument: {
		Extensions: []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".png", ".jpg", ".jpeg", ".gif", ".webp"},
		MIMEPrefixes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.ms-powerpoint",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"image/",
		},
	},
}

// Filter returns the file filter for kind. Text has no file filter.
func Filter(kind domain.ArtifactKind) (FileFilter, bool) {
	f, ok := filters[kind]
	return f, ok
}

// AcceptsName checks the extension only.
func (f FileFilter) AcceptsName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range f.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// AcceptsMIME reports whether m or any of its parents matches a prefix.
func (f FileFilter) AcceptsMIME(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		for _, p := range f.MIMEPrefixes {
			if strings.HasPrefix(m.String(), p) {
				return true
			}
		}
	}
	return false
}

// Describe renders the filter for prompts, e.g. ".pdf .docx".
func (f FileFilter) Describe() string {
	return strings.Join(f.Extensions, " ")
}
