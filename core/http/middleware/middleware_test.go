package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/core/http/middleware"
	"github.com/phonolab/phonolab/core/schema"
	"github.com/phonolab/phonolab/core/services"
)

var _ = Describe("MetricsMiddleware", func() {
	var (
		e       *echo.Echo
		metrics *services.MetricsService
	)

	BeforeEach(func() {
		var err error
		metrics, err = services.NewMetricsService()
		Expect(err).ToNot(HaveOccurred())

		e = echo.New()
		e.Use(middleware.RequestLogger())
		e.Use(middleware.MetricsMiddleware(metrics))
		e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
		e.POST("/fail", func(c echo.Context) error {
			return schema.Errorf(schema.ErrorKindUpstream, "upstream down")
		})
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	})

	AfterEach(func() {
		metrics.Shutdown()
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	It("records calls and failures by kind", func() {
		Expect(do(http.MethodGet, "/ok").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPost, "/fail").Code).To(Equal(http.StatusInternalServerError))

		rec := do(http.MethodGet, "/metrics")
		body, err := io.ReadAll(rec.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`path="/ok"`))
		Expect(string(body)).To(ContainSubstring(`kind="upstream"`))
		Expect(string(body)).ToNot(ContainSubstring(`path="/metrics"`))
	})
})
