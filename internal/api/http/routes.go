package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"forecast-aggregation/internal/forecast"
	"forecast-aggregation/internal/geo"
)

var validate = validator.New()

// positionDTO is the coordinate echo included in every successful response.
type positionDTO struct {
	Lat float32 `json:"lat"`
	Lon float32 `json:"lon"`
}

func toPositionDTO(pos geo.Position) positionDTO {
	return positionDTO{Lat: pos.Lat(), Lon: pos.Lon()}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. The catalog is
// owned by this layer: city resolution happens here, the service only ever
// sees positions.
func RegisterRoutes(app *fiber.App, service *forecast.Service, catalog *geo.Catalog) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		pos, ok := catalog.Find(locReq.Country, locReq.City)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "city not found")
		}

		result, err := service.Forecast(c.Context(), pos)
		if err != nil {
			// Surface the full error chain; it identifies the failing step
			// and the upstream cause.
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"position": toPositionDTO(pos),
			"forecast": result,
		})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		day := c.QueryInt("day", 0)
		if day < 0 || day >= forecast.Days {
			return fiber.NewError(fiber.StatusBadRequest, "can't see further than 5 days")
		}

		pos, ok := catalog.Find(locReq.Country, locReq.City)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "city not found")
		}

		result, err := service.Forecast(c.Context(), pos)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"position":    toPositionDTO(pos),
			"temperature": result[day],
		})
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
