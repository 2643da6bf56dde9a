package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ArtifactKind is the content type of a submission.
type ArtifactKind string

const (
	KindVideo    ArtifactKind = "video"
	KindAudio    ArtifactKind = "audio"
	KindDocument ArtifactKind = "document"
	KindText     ArtifactKind = "text"
)

// ArtifactKinds lists the kinds in picker order.
var ArtifactKinds = []ArtifactKind{KindVideo, KindAudio, KindDocument, KindText}

// ParseArtifactKind maps user input to a kind, case-insensitively.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	k := ArtifactKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ArtifactKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown submission kind %q (want video, audio, document or text)", s)
}

// Binary reports whether the kind is transmitted as a multipart file.
func (k ArtifactKind) Binary() bool {
	return k != KindText
}

// Artifact is a selected piece of work waiting to be submitted.
// Exactly one of Data or Text is meaningful, depending on Kind.
type Artifact struct {
	AttemptID uuid.UUID
	Kind      ArtifactKind
	Name      string // file name for binary kinds
	MIMEType  string
	Data      []byte
	Text      string
}

// Size returns the payload size in bytes.
func (a Artifact) Size() int {
	if a.Kind.Binary() {
		return len(a.Data)
	}
	return len(a.Text)
}
