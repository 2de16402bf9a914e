package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"

	metrics "github.com/tevjef/go-runtime-metrics"

	"github.com/aurumchain/aurum/cfg"
	"github.com/aurumchain/aurum/node"
	"github.com/aurumchain/aurum/utils"
)

func main() {
	nodeOptions := node.Options{}
	globalConfig := cfg.GlobalOptions{}
	err := cfg.LoadFlags(&nodeOptions, &globalConfig)
	if err != nil {
		logger.Fatal(err)
	}

	utils.CheckNTP()

	lvl, err := logger.ParseLevel(globalConfig.LogLevel)
	if err != nil {
		logger.Fatal(err)
	}
	logger.SetLevel(lvl)

	logger.StandardLogger().SetFormatter(&logger.TextFormatter{
		ForceColors: globalConfig.ForceColors,
	})

	err = metrics.RunCollector(metrics.DefaultConfig)
	if err != nil {
		logger.Warn(err)
	}

	if nodeOptions.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: nodeOptions.SentryDSN,
		})
		if err != nil {
			logger.Fatalf("sentry.Init: %s", err)
		}

		defer func() {
			err := recover()

			if err != nil {
				sentry.CurrentHub().Recover(err)
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	app, err := node.NewNodeApp(nodeOptions)
	if err != nil {
		logger.Fatal(errors.Wrap(err, "error initializing node module"))
	}

	errChan := make(chan error)

	go func() {
		logger.Info("starting node module")
		errChan <- app.Run()
	}()

	for {
		err := <-errChan
		if err != nil {
			logger.Error(err)
			app.Exit()
			return
		}
		logger.Infof("module exited gracefully")
	}
}
