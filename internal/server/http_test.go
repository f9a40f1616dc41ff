package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_compare/internal/biz"
	"github.com/iWorld-y/company_compare/internal/conf"
	"github.com/iWorld-y/company_compare/internal/data"
	"github.com/iWorld-y/company_compare/internal/llm"
	"github.com/iWorld-y/company_compare/internal/service"
)

type stubComparer struct {
	out string
	err error
}

func (s *stubComparer) Compare(ctx context.Context, company1, company2 string) (string, error) {
	return s.out, s.err
}

const stubResult = "## Summary Table\n| Metric | A | B |\n|---|---|---|\n| Revenue | 10 | 20 |\n\n## Conclusion\nA wins overall."

func newTestHandler(t *testing.T, comparer biz.Comparer) nethttp.Handler {
	t.Helper()
	d, cleanup, err := data.NewData(&conf.Data{}, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	uc := biz.NewCompareUseCase(comparer, data.NewComparisonRepo(d, log.DefaultLogger), log.DefaultLogger)
	svc := service.NewCompareService(uc, log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: &conf.HTTP{Timeout: "5s"}}, svc, log.DefaultLogger)
}

func postJSON(t *testing.T, h nethttp.Handler, body string) (*httptest.ResponseRecorder, service.CompareReply) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var reply service.CompareReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply), rec.Body.String())
	return rec, reply
}

func TestAPICompare(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	rec, reply := postJSON(t, h, `{"company1":"A","company2":"B"}`)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.True(t, reply.Success)
	assert.Equal(t, stubResult, reply.Data)
	require.Len(t, reply.Sections, 2)
	require.NotNil(t, reply.Sections[0].Table)
	assert.Equal(t, []string{"Metric", "A", "B"}, reply.Sections[0].Table.Headers)
	assert.Equal(t, "A wins overall.", reply.Sections[1].Content)
}

func TestAPICompare_Validation(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	rec, reply := postJSON(t, h, `{"company1":"A","company2":"  "}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "Both company names are required", reply.Error)
}

func TestAPICompare_MissingKey(t *testing.T) {
	h := newTestHandler(t, &stubComparer{err: llm.ErrMissingAPIKey})

	rec, reply := postJSON(t, h, `{"company1":"A","company2":"B"}`)
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.False(t, reply.Success)
	assert.Contains(t, reply.Error, "API key is not configured")
}

func TestListComparisons_HistoryDisabled(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/comparisons?limit=5", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	var reply service.ListComparisonsReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Success)
	assert.Empty(t, reply.Comparisons)
}

func TestIndexPage(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<form method="post" action="/compare">`)
}

func TestSubmitForm(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	form := url.Values{"company1": {"A"}, "company2": {"B"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/compare", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h3>Summary Table</h3>")
	assert.Contains(t, body, "<th>Metric</th>")
	assert.Contains(t, body, "A wins overall.")
}

func TestSubmitForm_Error(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	req := httptest.NewRequest(nethttp.MethodPost, "/compare", strings.NewReader("company1=A"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Both company names are required")
}

func TestShowComparison_NotFound(t *testing.T) {
	h := newTestHandler(t, &stubComparer{out: stubResult})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/comparisons/3", nil))
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/comparisons/abc", nil))
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}
