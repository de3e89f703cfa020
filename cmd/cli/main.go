package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/WangWilly/xSmoke/pkgs/clipkg/config"
	"github.com/WangWilly/xSmoke/pkgs/clipkg/console"
	"github.com/WangWilly/xSmoke/pkgs/clipkg/helpers/syscfghelper"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/services"
	"github.com/gookit/color"
	log "github.com/sirupsen/logrus"
)

func main() {
	println("xSmoke - X API Smoke Test")

	////////////////////////////////////////////////////////////////////////////
	// Command Line Arguments Setup
	////////////////////////////////////////////////////////////////////////////
	var isDebug bool
	var confPath string
	var envPath string
	var writeConf bool

	flag.BoolVar(&isDebug, "debug", false, "display debug message")
	flag.StringVar(&confPath, "conf", "", "yaml config file (default ~/.x_smoke/conf.yaml when present)")
	flag.StringVar(&envPath, "env", config.DEFAULT_ENV_FILE, "dotenv file holding "+config.ENV_ACCESS_TOKEN)
	flag.BoolVar(&writeConf, "write-conf", false, "write the effective config and exit")
	flag.Parse()

	// context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	////////////////////////////////////////////////////////////////////////////
	// System Config Initialization
	////////////////////////////////////////////////////////////////////////////
	sysHelper := syscfghelper.New(syscfghelper.CliParams{
		IsDebug:  isDebug,
		ConfPath: confPath,
		EnvPath:  envPath,
	})
	defer sysHelper.Close()

	if writeConf {
		if err := sysHelper.WriteConfig(); err != nil {
			log.Fatalln("failed to write config:", err)
		}
		log.Infoln("config written to", color.FgLightBlue.Render(sysHelper.GetConfPath()))
		return
	}

	// listen signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer close(sigChan)
	defer signal.Stop(sigChan)
	go func() {
		sig, ok := <-sigChan
		if ok {
			log.Warnln("[listener] caught signal:", sig)
			cancel()
		}
	}()

	////////////////////////////////////////////////////////////////////////////
	// Main Job Execution
	////////////////////////////////////////////////////////////////////////////
	smoke := services.NewSmokeService(
		config.LoadAccessToken,
		sysHelper.NewClient,
		console.NewPrinter(os.Stdout),
		sysHelper.GetSmokeOptions(),
	)
	log.WithField("run_id", smoke.RunId()).Infoln("starting smoke run")

	report, err := smoke.Run(ctx)
	if err != nil {
		sysHelper.CloseWithError(err)
		os.Exit(1)
	}
	if failed := report.Failed(); len(failed) > 0 {
		log.Infof("smoke run finished with %d failed step(s)", len(failed))
	}
}
