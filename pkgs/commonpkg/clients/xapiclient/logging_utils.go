package xapiclient

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// SetXClientLogger routes the resty request log of client to out
func SetXClientLogger(client *Client, out io.Writer) {
	logger := log.New()
	logger.SetLevel(log.InfoLevel)
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableQuote:  true,
	})
	client.SetLogger(logger)
}
