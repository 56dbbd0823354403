package utils

import "github.com/google/uuid"

const uploadPrefix = "uploads/"

// UploadKey builds the object key for an uploaded file. The random prefix
// keeps two uploads with the same name from overwriting each other. changed
// reports whether the filename had to be sanitized.
func UploadKey(fileName string) (key string, changed bool) {
	safe := SanitizeObjectName(fileName)
	return uploadPrefix + uuid.NewString() + "-" + safe, safe != fileName
}
