package common

import (
	"github.com/google/uuid"
)

// NewDocumentID generates a unique ID for an ingested PDF document.
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewObjectKey derives a deterministic object-store key from a source
// identifier (a document's source URL, or its document ID) and a tag,
// using a namespaced UUID so repeated runs over the same source and tag
// collide on purpose rather than scattering objects across retries.
func NewObjectKey(source, tag string) string {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte("statementcore:"+source))
	return uuid.NewSHA1(ns, []byte(tag)).String()
}
