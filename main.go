package main

import (
	"flag"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gopkg.in/mgo.v2"

	"github.com/intervention-engine/stsrisk/server"
)

func main() {
	// Check for a linked MongoDB container if we are running in Docker
	mongoHost := os.Getenv("MONGO_PORT_27017_TCP_ADDR")
	if mongoHost == "" {
		mongoHost = "localhost"
	}
	port := flag.String("port", "9000", "Port to listen on")
	flag.Parse()

	session, err := mgo.Dial(mongoHost)
	if err != nil {
		panic("Can't connect to the database")
	}
	defer session.Close()
	db := session.DB("stsrisk")

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	service := server.NewReferenceRiskService(db)
	server.RegisterRoutes(e, service)
	e.Logger.Fatal(e.Start(":" + *port))
}
