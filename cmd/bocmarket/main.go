package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/talkincode/bocmarket/config"
	"github.com/talkincode/bocmarket/internal/adminapi"
	"github.com/talkincode/bocmarket/internal/app"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "bocmarket.yml", "config yaml file")
	initdemo = flag.Bool("demo", false, "seed demo data and exit")
)

func printVersion() {
	fmt.Println("bocmarket point of sale service")
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdemo {
		if err := application.CreateDemoData(); err != nil {
			zap.S().Fatalf("demo data failed: %v", err)
		}
		zap.S().Info("demo data created")
		return
	}

	server := adminapi.NewWebServer(application)
	go func() {
		if err := server.Start(); err != nil {
			zap.S().Fatalf("web server failed: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	zap.S().Info("shutting down")
}
