package http

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/view"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and
// logging. No request deadline is imposed at this layer; the backend client
// carries its own transport timeout and Redis calls are local.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, renderer *view.Renderer) {
	app.Use(errorHandlingMiddleware(logger, metrics, renderer))
	app.Use(observability.RequestLogger(logger, metrics))
}

// errorHandlingMiddleware maps any handler error onto the error taxonomy
// and renders the error page. Panics degrade to an internal error instead
// of dropping the connection.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, renderer *view.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				if renderErr := renderer.Render(c, "error", view.ErrorPage{
					Page:    view.Page{Title: "Something went wrong"},
					Code:    domainErr.Code,
					Message: domainErr.Message,
				}); renderErr != nil {
					_ = c.SendString(domainErr.Message)
				}
				err = nil
			}
		}()
		return c.Next()
	}
}
