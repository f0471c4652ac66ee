package v1

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/autodash/internal/model/types"
	"exusiai.dev/autodash/internal/pkg/cachectrl"
	"exusiai.dev/autodash/internal/server/svr"
	"exusiai.dev/autodash/internal/service"
	"exusiai.dev/autodash/internal/util/rekuest"
)

type Energy struct {
	fx.In

	EnergyService    *service.Energy
	PredictorService *service.Predictor
}

func RegisterEnergy(v1 *svr.V1, c Energy) {
	v1.Get("/energy/tabs", c.GetTabs)
	v1.Get("/energy/tabs/:tab", c.GetTab)
	v1.Get("/energy/tabs/:tab/chart.png", c.GetTabPNG)
	v1.Post("/energy/predict", c.Predict)
}

func (c *Energy) GetTabs(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"enabled":          c.EnergyService.Enabled(),
		"predictorEnabled": c.PredictorService.Available(),
		"tabs":             c.EnergyService.Tabs(),
	})
}

func (c *Energy) GetTab(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.EnergyService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	layout, err := c.EnergyService.Tab(ctx.UserContext(), ctx.Params("tab"))
	if err != nil {
		return err
	}
	return ctx.JSON(layout)
}

func (c *Energy) GetTabPNG(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.EnergyService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	var size types.SizeQuery
	if err := rekuest.ValidQuery(ctx, &size); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.EnergyService.TabPNG(ctx.UserContext(), &buf, ctx.Params("tab"), size.Size()); err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, mimePNG)
	return ctx.Send(buf.Bytes())
}

func (c *Energy) Predict(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)

	var request types.PredictRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	prediction, err := c.PredictorService.Predict(ctx.UserContext(), request.Features())
	if err != nil {
		return err
	}
	return ctx.JSON(types.PredictResponse{
		Prediction: prediction,
		Features:   c.PredictorService.Features(),
	})
}
