package imagehost

import (
	"path/filepath"

	"minibook/config"
	"minibook/util/random"
)

// StagedUploadPrefix marks files staged by the upload flow so the cleanup
// job never touches unrelated files in a shared temp directory.
const StagedUploadPrefix = "minibook-upload-"

// StagingPath returns a fresh path in the staging directory for an incoming
// multipart file, keeping the original extension.
func StagingPath(originalName string) string {
	name := StagedUploadPrefix + random.Seq(12) + filepath.Ext(originalName)
	return filepath.Join(config.GetUploadStagingDir(), name)
}
