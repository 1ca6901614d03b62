package database

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger reports slow queries and failures. A missing row is an expected
// answer for snapshot lookups and stays quiet.
func newGormLogger(writer logger.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(writer, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func stderrWriter() logger.Writer {
	return log.New(os.Stderr, "\r\n", log.LstdFlags)
}
