package service

import (
	"os"
	"testing"

	"minibook/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	os.Setenv("MB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}
