package v1

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/autodash/internal/model"
	"exusiai.dev/autodash/internal/model/types"
	"exusiai.dev/autodash/internal/pkg/cachectrl"
	"exusiai.dev/autodash/internal/server/svr"
	"exusiai.dev/autodash/internal/service"
	"exusiai.dev/autodash/internal/util/rekuest"
)

const (
	mimePNG  = "image/png"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Autosales struct {
	fx.In

	AutosalesService *service.Autosales
}

func RegisterAutosales(v1 *svr.V1, c Autosales) {
	v1.Get("/autosales/options", c.GetOptions)
	v1.Get("/autosales/year-control", c.GetYearControl)
	v1.Get("/autosales/dashboard", c.GetDashboard)
	v1.Get("/autosales/dashboard/:row/:col.png", c.GetChartPNG)
	v1.Get("/autosales/aggregates", c.GetAggregates)
	v1.Get("/autosales/export.xlsx", c.GetExport)
}

func selection(ctx *fiber.Ctx) (model.Selection, error) {
	var q types.SelectionQuery
	if err := rekuest.ValidQuery(ctx, &q); err != nil {
		return model.Selection{}, err
	}
	return q.Selection(), nil
}

func (c *Autosales) GetOptions(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.AutosalesService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	options, err := c.AutosalesService.Options()
	if err != nil {
		return err
	}
	return ctx.JSON(options)
}

func (c *Autosales) GetYearControl(ctx *fiber.Ctx) error {
	kind := model.ParseStatisticKind(ctx.Query("kind"))
	return ctx.JSON(c.AutosalesService.YearControl(kind))
}

func (c *Autosales) GetDashboard(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.AutosalesService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	sel, err := selection(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(c.AutosalesService.Dashboard(ctx.UserContext(), sel))
}

func (c *Autosales) GetAggregates(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.AutosalesService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	sel, err := selection(ctx)
	if err != nil {
		return err
	}
	aggregates := c.AutosalesService.Aggregates(sel)
	if aggregates == nil {
		aggregates = []model.Aggregate{}
	}
	return ctx.JSON(aggregates)
}

func (c *Autosales) GetChartPNG(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.AutosalesService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	var pos types.ChartPosition
	if err := rekuest.ValidParams(ctx, &pos); err != nil {
		return err
	}
	var size types.SizeQuery
	if err := rekuest.ValidQuery(ctx, &size); err != nil {
		return err
	}
	sel, err := selection(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.AutosalesService.ChartPNG(ctx.UserContext(), &buf, sel, pos.Row, pos.Col, size.Size()); err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, mimePNG)
	return ctx.Send(buf.Bytes())
}

func (c *Autosales) GetExport(ctx *fiber.Ctx) error {
	if cachectrl.OptIn(ctx, c.AutosalesService.LoadedAt) {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	sel, err := selection(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.AutosalesService.Export(ctx.UserContext(), &buf, sel); err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, mimeXLSX)
	ctx.Attachment("autosales-" + sel.Kind.String() + ".xlsx")
	return ctx.Send(buf.Bytes())
}
