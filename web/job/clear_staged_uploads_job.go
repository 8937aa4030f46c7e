// Package job holds the scheduled background jobs of the web server.
package job

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"minibook/config"
	"minibook/logger"
	"minibook/util/common"
	"minibook/web/imagehost"
)

// stagedUploadMaxAge is how long a staged file may linger before cleanup.
// Normal requests delete their staged file themselves; this catches files
// orphaned by crashes or failed uploads.
const stagedUploadMaxAge = time.Hour

// ClearStagedUploadsJob removes stale files from the upload staging
// directory.
type ClearStagedUploadsJob struct{}

func NewClearStagedUploadsJob() *ClearStagedUploadsJob {
	return new(ClearStagedUploadsJob)
}

// Run is the Job interface method invoked by the scheduler.
func (j *ClearStagedUploadsJob) Run() {
	defer common.Recover("clear staged uploads job")

	dir := config.GetUploadStagingDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warning("clear staged uploads job err:", err)
		return
	}

	cutoff := time.Now().Add(-stagedUploadMaxAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), imagehost.StagedUploadPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warning("clear staged uploads job err:", err)
		} else {
			logger.Debugf("removed stale staged upload %s", path)
		}
	}
}
