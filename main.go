package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/autogallery/dealership-api/api/handlers"
	"github.com/autogallery/dealership-api/api/scheduler"
	"github.com/autogallery/dealership-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.Config.StorePath)
	s.Start()
	defer s.Stop()

	port := a.Config.Port
	if port == "" {
		port = "8080"
	}
	zap.S().Infow("dealership-api is up and running",
		"port", port,
		"url", a.Config.BaseUrl,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
