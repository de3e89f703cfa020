package syscfghelper

import (
	"os"
	"path/filepath"

	"github.com/WangWilly/xSmoke/pkgs/clipkg/config"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/logging"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/services"
	log "github.com/sirupsen/logrus"
)

type CliParams struct {
	IsDebug  bool
	ConfPath string // explicit config file, empty to look in the state dir
	EnvPath  string // dotenv file, empty for ./.env
}

type helper struct {
	cliParams CliParams

	sysStateDir   string
	logFile       *os.File
	clientLogFile *os.File

	confPath  string
	sysConfig *config.Config

	clients []*xapiclient.Client
}

func New(cliParams CliParams) *helper {
	h := &helper{
		cliParams: cliParams,
	}

	h.init()

	return h
}

func (h *helper) init() {
	h.sysStateDir = filepath.Join(getHomePath(), SYS_STATE_DIR)
	if err := os.MkdirAll(h.sysStateDir, 0755); err != nil {
		log.Fatalln("failed to make app dir", err)
	}

	////////////////////////////////////////////////////////////////////////////

	logPath := filepath.Join(h.sysStateDir, SYS_LOG_FILE)
	logFile, err := os.OpenFile(logPath, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalln("failed to create log file:", err)
	}
	logging.InitLogger(h.cliParams.IsDebug, logFile)
	h.logFile = logFile

	clientLogPath := filepath.Join(h.sysStateDir, CLIENT_LOG_FILE)
	clientLogFile, err := os.OpenFile(clientLogPath, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalln("failed to create client log file:", err)
	}
	h.clientLogFile = clientLogFile

	////////////////////////////////////////////////////////////////////////////

	envPath := h.cliParams.EnvPath
	if envPath == "" {
		envPath = config.DEFAULT_ENV_FILE
	}
	if err := config.LoadEnvFiles(envPath); err != nil {
		log.Fatalln("failed to load env file:", err)
	}

	h.confPath = h.cliParams.ConfPath
	if h.confPath == "" {
		h.confPath = filepath.Join(h.sysStateDir, SYS_CONF_FILE)
		if ok, err := fileExists(h.confPath); err != nil {
			log.Fatalln("failed to check config file existence:", err)
		} else if !ok {
			log.Debugln("no config file at", h.confPath, "using defaults")
			h.sysConfig = config.Default()
			return
		}
	}

	conf, err := config.ReadConfig(h.confPath)
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}
	h.sysConfig = conf
	log.Debugln("config is loaded from", h.confPath)
}

////////////////////////////////////////////////////////////////////////////////

func (h *helper) GetConfig() *config.Config {
	return h.sysConfig
}

func (h *helper) GetConfPath() string {
	return h.confPath
}

func (h *helper) GetStateDir() string {
	return h.sysStateDir
}

// WriteConfig stores the effective configuration at the config path
func (h *helper) WriteConfig() error {
	return config.WriteConfig(h.confPath, h.sysConfig)
}

func (h *helper) GetSmokeOptions() services.Options {
	return services.Options{
		TweetText:          h.sysConfig.TweetText,
		ReplyText:          h.sysConfig.ReplyText,
		QuoteText:          h.sysConfig.QuoteText,
		SearchQuery:        h.sysConfig.SearchQuery,
		SearchMaxResults:   h.sysConfig.SearchMaxResults,
		SearchDisplayCap:   h.sysConfig.SearchDisplayCap,
		MentionsMaxResults: h.sysConfig.MentionsMaxResults,
		MentionsDisplayCap: h.sysConfig.MentionsDisplayCap,
		LookupUsername:     h.sysConfig.LookupUsername,
	}
}

// NewClient builds an API client that logs requests to the client log
func (h *helper) NewClient(token string) services.XClient {
	client := xapiclient.New(h.sysConfig.ClientConfig(token))
	xapiclient.SetXClientLogger(client, h.clientLogFile)
	if h.cliParams.IsDebug {
		client.EnableRequestCounting()
	}
	h.clients = append(h.clients, client)
	return client
}

////////////////////////////////////////////////////////////////////////////////

func (h *helper) Close() {
	if h.cliParams.IsDebug {
		for _, client := range h.clients {
			client.ReportRequestCount()
		}
		h.clients = nil
	}
	if h.clientLogFile != nil {
		h.clientLogFile.Close()
		h.clientLogFile = nil
	}
	if h.logFile != nil {
		h.logFile.Close()
		h.logFile = nil
	}
}

// CloseWithError logs err while the log file is still open, then closes
func (h *helper) CloseWithError(err error) {
	log.Errorln(err)
	h.Close()
}
