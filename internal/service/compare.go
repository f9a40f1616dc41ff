package service

import (
	"bytes"
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/company_compare/internal/biz"
	"github.com/iWorld-y/company_compare/internal/render"
	"github.com/iWorld-y/company_compare/internal/report"
)

const dateLayout = "2006-01-02 15:04:05"

// CompareRequest POST /api/compare 请求体
type CompareRequest struct {
	Company1 string `json:"company1"`
	Company2 string `json:"company2"`
}

// CompareReply 与前端约定的响应结构，失败时只有 error
type CompareReply struct {
	Success  bool             `json:"success"`
	Data     string           `json:"data,omitempty"`
	Sections []report.Section `json:"sections,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type ComparisonSummary struct {
	ID        int64  `json:"id"`
	Company1  string `json:"company1"`
	Company2  string `json:"company2"`
	CreatedAt string `json:"created_at"`
}

type ListComparisonsReply struct {
	Success     bool                 `json:"success"`
	Comparisons []*ComparisonSummary `json:"comparisons"`
	Error       string               `json:"error,omitempty"`
}

// CompareUseCase 服务层依赖的业务接口
type CompareUseCase interface {
	Compare(ctx context.Context, company1, company2 string) (*biz.Comparison, error)
	Recent(ctx context.Context, limit int) ([]*biz.Comparison, error)
	Get(ctx context.Context, id int64) (*biz.Comparison, error)
}

type CompareService struct {
	uc  CompareUseCase
	log *log.Helper
}

func NewCompareService(uc CompareUseCase, logger log.Logger) *CompareService {
	return &CompareService{uc: uc, log: log.NewHelper(logger)}
}

// Compare POST /api/compare
func (s *CompareService) Compare(ctx http.Context) error {
	var req CompareRequest
	if err := ctx.Bind(&req); err != nil {
		return s.replyError(ctx, errors.BadRequest("INVALID_REQUEST", "Request body must be JSON with company1 and company2"))
	}

	c, err := s.compare(ctx, req.Company1, req.Company2)
	if err != nil {
		return s.replyError(ctx, err)
	}
	return ctx.JSON(nethttp.StatusOK, &CompareReply{Success: true, Data: c.Result, Sections: c.Sections})
}

// compare 经过服务端中间件（recovery 等）调用业务逻辑
func (s *CompareService) compare(ctx http.Context, company1, company2 string) (*biz.Comparison, error) {
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		in := req.(*CompareRequest)
		return s.uc.Compare(ctx, in.Company1, in.Company2)
	})
	out, err := h(ctx, &CompareRequest{Company1: company1, Company2: company2})
	if err != nil {
		return nil, err
	}
	return out.(*biz.Comparison), nil
}

// ListComparisons GET /api/comparisons?limit=N
func (s *CompareService) ListComparisons(ctx http.Context) error {
	limit, _ := strconv.Atoi(ctx.Query().Get("limit"))

	list, err := s.uc.Recent(ctx, limit)
	if err != nil {
		e := errors.FromError(err)
		return ctx.JSON(int(e.Code), &ListComparisonsReply{Success: false, Comparisons: []*ComparisonSummary{}, Error: e.Message})
	}

	reply := &ListComparisonsReply{Success: true, Comparisons: make([]*ComparisonSummary, 0, len(list))}
	for _, c := range list {
		reply.Comparisons = append(reply.Comparisons, &ComparisonSummary{
			ID:        c.ID,
			Company1:  c.Company1,
			Company2:  c.Company2,
			CreatedAt: c.CreatedAt.Format(dateLayout),
		})
	}
	return ctx.JSON(nethttp.StatusOK, reply)
}

// Index GET /
func (s *CompareService) Index(ctx http.Context) error {
	return s.renderIndex(ctx, nethttp.StatusOK, render.IndexData{Recent: s.recent(ctx)})
}

// SubmitForm POST /compare
func (s *CompareService) SubmitForm(ctx http.Context) error {
	form := ctx.Form()
	data := render.IndexData{
		Company1: form.Get("company1"),
		Company2: form.Get("company2"),
	}

	c, err := s.compare(ctx, data.Company1, data.Company2)
	if err != nil {
		e := errors.FromError(err)
		data.Error = e.Message
		return s.renderIndex(ctx, int(e.Code), data)
	}

	page := render.NewPage(c.Company1, c.Company2, c.CreatedAt.Format(dateLayout), c.Sections)
	data.Report = &page
	return s.renderIndex(ctx, nethttp.StatusOK, data)
}

// ShowComparison GET /comparisons/{id}
func (s *CompareService) ShowComparison(ctx http.Context) error {
	id, err := strconv.ParseInt(ctx.Vars().Get("id"), 10, 64)
	if err != nil {
		return s.renderIndex(ctx, nethttp.StatusBadRequest, render.IndexData{Error: "Invalid comparison id"})
	}

	c, err := s.uc.Get(ctx, id)
	if err != nil {
		e := errors.FromError(err)
		return s.renderIndex(ctx, int(e.Code), render.IndexData{Error: e.Message})
	}

	var buf bytes.Buffer
	if err := render.Report(&buf, render.NewPage(c.Company1, c.Company2, c.CreatedAt.Format(dateLayout), c.Sections)); err != nil {
		return err
	}
	return writeHTML(ctx, nethttp.StatusOK, buf.Bytes())
}

func (s *CompareService) replyError(ctx http.Context, err error) error {
	e := errors.FromError(err)
	s.log.WithContext(ctx).Warnf("compare request failed: code=%d reason=%s message=%s", e.Code, e.Reason, e.Message)
	return ctx.JSON(int(e.Code), &CompareReply{Success: false, Error: e.Message})
}

func (s *CompareService) recent(ctx context.Context) []render.RecentItem {
	list, err := s.uc.Recent(ctx, 0)
	if err != nil {
		s.log.WithContext(ctx).Warnf("list recent comparisons failed: %v", err)
		return nil
	}
	items := make([]render.RecentItem, 0, len(list))
	for _, c := range list {
		items = append(items, render.RecentItem{
			ID:       c.ID,
			Company1: c.Company1,
			Company2: c.Company2,
			Date:     c.CreatedAt.Format(time.DateOnly),
		})
	}
	return items
}

func (s *CompareService) renderIndex(ctx http.Context, code int, data render.IndexData) error {
	var buf bytes.Buffer
	if err := render.Index(&buf, data); err != nil {
		return err
	}
	return writeHTML(ctx, code, buf.Bytes())
}

func writeHTML(ctx http.Context, code int, body []byte) error {
	w := ctx.Response()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := w.Write(body)
	return err
}
