package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
	"gopkg.in/yaml.v3"
)

// Config holds the literals and caps of a smoke run. Every field is optional
// in the file; Default fills the gaps.
type Config struct {
	ApiBaseUrl         string `yaml:"api_base_url"`
	AuthScheme         string `yaml:"auth_scheme"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	TweetText          string `yaml:"tweet_text"`
	ReplyText          string `yaml:"reply_text"`
	QuoteText          string `yaml:"quote_text"`
	SearchQuery        string `yaml:"search_query"`
	SearchMaxResults   int    `yaml:"search_max_results"`
	SearchDisplayCap   int    `yaml:"search_display_cap"`
	MentionsMaxResults int    `yaml:"mentions_max_results"`
	MentionsDisplayCap int    `yaml:"mentions_display_cap"`
	LookupUsername     string `yaml:"lookup_username"`
}

////////////////////////////////////////////////////////////////////////////////

const (
	DEFAULT_TWEET_TEXT           = "Hello Web3 🧵 #GameByVirtuals - Testing GAME SDK!"
	DEFAULT_REPLY_TEXT           = "Replying to my own tweet 😎"
	DEFAULT_QUOTE_TEXT           = "Excited to be testing the new Game Twitter Plugin!"
	DEFAULT_SEARCH_QUERY         = "#GameByVirtuals"
	DEFAULT_SEARCH_MAX_RESULTS   = 10
	DEFAULT_SEARCH_DISPLAY_CAP   = 3
	DEFAULT_MENTIONS_MAX_RESULTS = 5
	DEFAULT_MENTIONS_DISPLAY_CAP = 5
	DEFAULT_LOOKUP_USERNAME      = "GAME_Virtuals"
	DEFAULT_TIMEOUT_SECONDS      = 30
)

// Default returns the configuration of the stock smoke run
func Default() *Config {
	return &Config{
		ApiBaseUrl:         xapiclient.GAME_API_HOST,
		AuthScheme:         xapiclient.AUTH_SCHEME_API_KEY,
		TimeoutSeconds:     DEFAULT_TIMEOUT_SECONDS,
		TweetText:          DEFAULT_TWEET_TEXT,
		ReplyText:          DEFAULT_REPLY_TEXT,
		QuoteText:          DEFAULT_QUOTE_TEXT,
		SearchQuery:        DEFAULT_SEARCH_QUERY,
		SearchMaxResults:   DEFAULT_SEARCH_MAX_RESULTS,
		SearchDisplayCap:   DEFAULT_SEARCH_DISPLAY_CAP,
		MentionsMaxResults: DEFAULT_MENTIONS_MAX_RESULTS,
		MentionsDisplayCap: DEFAULT_MENTIONS_DISPLAY_CAP,
		LookupUsername:     DEFAULT_LOOKUP_USERNAME,
	}
}

// ApplyDefaults fills every zero field from Default
func (c *Config) ApplyDefaults() *Config {
	def := Default()
	if c.ApiBaseUrl == "" {
		c.ApiBaseUrl = def.ApiBaseUrl
	}
	if c.AuthScheme == "" {
		c.AuthScheme = def.AuthScheme
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.TweetText == "" {
		c.TweetText = def.TweetText
	}
	if c.ReplyText == "" {
		c.ReplyText = def.ReplyText
	}
	if c.QuoteText == "" {
		c.QuoteText = def.QuoteText
	}
	if c.SearchQuery == "" {
		c.SearchQuery = def.SearchQuery
	}
	if c.SearchMaxResults <= 0 {
		c.SearchMaxResults = def.SearchMaxResults
	}
	if c.SearchDisplayCap <= 0 {
		c.SearchDisplayCap = def.SearchDisplayCap
	}
	if c.MentionsMaxResults <= 0 {
		c.MentionsMaxResults = def.MentionsMaxResults
	}
	if c.MentionsDisplayCap <= 0 {
		c.MentionsDisplayCap = def.MentionsDisplayCap
	}
	if c.LookupUsername == "" {
		c.LookupUsername = def.LookupUsername
	}
	return c
}

// ClientConfig builds the API client configuration for token
func (c *Config) ClientConfig(token string) xapiclient.Config {
	return xapiclient.Config{
		AccessToken: token,
		ApiBase:     c.ApiBaseUrl,
		AuthScheme:  c.AuthScheme,
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

////////////////////////////////////////////////////////////////////////////////
// Configuration File Management
////////////////////////////////////////////////////////////////////////////////

// ReadConfig reads configuration from the specified path. An empty path
// yields the defaults.
func ReadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var result Config
	err = yaml.Unmarshal(data, &result)
	if err != nil {
		return nil, err
	}
	return result.ApplyDefaults(), nil
}

// WriteConfig writes configuration to the specified path
func WriteConfig(path string, conf *Config) error {
	file, err := os.OpenFile(path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, bytes.NewReader(data))
	return err
}
