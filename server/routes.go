package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/intervention-engine/stsrisk/patient"
)

// RegisterRoutes sets up the http request handlers with Echo
func RegisterRoutes(e *echo.Echo, service RiskService) {
	e.POST("/assessments", func(c echo.Context) error {
		record := &patient.Record{}
		if err := c.Bind(record); err != nil {
			return c.String(http.StatusBadRequest, "Request body must be a JSON patient record")
		}
		doc, err := service.Assess(record)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, doc)
	})

	e.GET("/assessments/:id", func(c echo.Context) error {
		id := c.Param("id")
		if !bson.IsObjectIdHex(id) {
			return c.String(http.StatusBadRequest, "Bad ID format for requested assessment. Should be a BSON Id")
		}
		doc, err := service.Get(id)
		if err == mgo.ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, doc)
	})
}
