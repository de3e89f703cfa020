package services

import "fmt"

const PERMALINK_FORMAT = "https://x.com/i/web/status/%s"

// Permalink returns the public URL of a tweet
func Permalink(tweetId string) string {
	return fmt.Sprintf(PERMALINK_FORMAT, tweetId)
}
