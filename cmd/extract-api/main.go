package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"smart-extract/api"
	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/history"
	"smart-extract/logging"
	"smart-extract/utils"
)

var (
	cfg     *config.Config
	users   *auth.UsersFile
	loggers []*logging.Logger
)

func main() {
	utils.LogToFile("api.log")
	loadEverything()

	var store *history.Store
	var err error
	if cfg.History.Backend != "" && cfg.History.Backend != "none" {
		store, err = history.Open(cfg.History.Backend, cfg.History.DSN)
		if err != nil {
			log.Fatalf("Failed history store: %v", err)
		}
	}

	api.RegisterHandlers(cfg, users, store, loggers[0], loggers[1])

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP)
	go func() {
		for range sigs {
			log.Println("Reloading configs...")
			loadEverything()
		}
	}()

	log.Printf("Server started listening on %s ...", cfg.Server.Listen)
	log.Fatal(api.StartServer(cfg.Server.Listen))
}

func loadEverything() {
	var err error
	cfg, err = config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed config.yaml: %v", err)
	}
	users, err = auth.LoadUsers(cfg.Auth.UserFile)
	if err != nil {
		log.Fatalf("Failed users.yaml: %v", err)
	}
	os.MkdirAll(cfg.Server.LogDir, 0755)
	loggers = []*logging.Logger{
		logging.NewLoggerOrDie(cfg.Server.LogDir, "access.log"),
		logging.NewLoggerOrDie(cfg.Server.LogDir, "login.log"),
	}
}
