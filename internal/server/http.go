package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/company_compare/internal/conf"
	"github.com/iWorld-y/company_compare/internal/service"
)

// NewHTTPServer 注册表单页面与 JSON 接口
func NewHTTPServer(c *conf.Server, s *service.CompareService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("invalid http timeout %q, using default: %v", c.Http.Timeout, err)
			}
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/")
	r.GET("/", s.Index)
	r.POST("/compare", s.SubmitForm)
	r.GET("/comparisons/{id}", s.ShowComparison)
	r.POST("/api/compare", s.Compare)
	r.GET("/api/comparisons", s.ListComparisons)

	return srv
}
