package middleware

import (
	"github.com/labstack/echo/v4"
)

// Stage is one step of a route's request pipeline. Returning nil continues with
// the next stage; returning an error short-circuits the rest of the pipeline and
// the handler, leaving the error to the HTTP error handler.
type Stage func(c echo.Context) error

// Pipeline composes stages, in order, in front of a handler.
func Pipeline(stages ...Stage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, stage := range stages {
				if err := stage(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

// Middleware adapts a single stage for use with echo's Use or route options.
func (s Stage) Middleware() echo.MiddlewareFunc {
	return Pipeline(s)
}
