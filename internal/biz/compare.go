package biz

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_compare/internal/llm"
	"github.com/iWorld-y/company_compare/internal/report"
)

const (
	// MaxCompanyNameLen 公司名称的最大字符数
	MaxCompanyNameLen = 100

	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// Comparison 一次对比的结果
type Comparison struct {
	ID        int64
	Company1  string
	Company2  string
	Result    string
	Sections  []report.Section
	CreatedAt time.Time
}

// Comparer 生成对比分析文本
type Comparer interface {
	Compare(ctx context.Context, company1, company2 string) (string, error)
}

// ComparisonRepo 对比历史仓库接口
type ComparisonRepo interface {
	// Save 保存对比结果并回填 ID
	Save(ctx context.Context, c *Comparison) error
	// ListRecent 按时间倒序列出最近的对比
	ListRecent(ctx context.Context, limit int) ([]*Comparison, error)
	// Get 根据 ID 获取对比
	Get(ctx context.Context, id int64) (*Comparison, error)
}

// CompareUseCase 公司对比业务逻辑
type CompareUseCase struct {
	comparer Comparer
	repo     ComparisonRepo
	log      *log.Helper
}

// NewCompareUseCase 创建公司对比业务逻辑实例
func NewCompareUseCase(comparer Comparer, repo ComparisonRepo, logger log.Logger) *CompareUseCase {
	return &CompareUseCase{comparer: comparer, repo: repo, log: log.NewHelper(logger)}
}

// Compare 校验输入、请求模型、解析结果并尽力保存
func (uc *CompareUseCase) Compare(ctx context.Context, company1, company2 string) (*Comparison, error) {
	company1, company2, err := ValidateCompanies(company1, company2)
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("comparing %q vs %q", company1, company2)
	raw, err := uc.comparer.Compare(ctx, company1, company2)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("comparison failed [%s vs %s]: %v", company1, company2, err)
		return nil, upstreamError(err)
	}

	sections, err := report.Parse(raw)
	if err != nil {
		return nil, errors.InternalServer("INVALID_RESPONSE", "The language model returned an unreadable response").WithCause(err)
	}

	c := &Comparison{
		Company1:  company1,
		Company2:  company2,
		Result:    raw,
		Sections:  sections,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		// 历史记录失败不影响本次结果
		uc.log.WithContext(ctx).Warnf("save comparison failed: %v", err)
	}
	return c, nil
}

// Recent 最近的对比记录，不包含解析后的段落
func (uc *CompareUseCase) Recent(ctx context.Context, limit int) ([]*Comparison, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return uc.repo.ListRecent(ctx, limit)
}

// Get 获取历史对比并重新解析
func (uc *CompareUseCase) Get(ctx context.Context, id int64) (*Comparison, error) {
	c, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sections, err := report.Parse(c.Result)
	if err != nil {
		return nil, errors.InternalServer("INVALID_RESPONSE", "Stored comparison cannot be displayed").WithCause(err)
	}
	c.Sections = sections
	return c, nil
}

// ValidateCompanies 去掉首尾空白后校验公司名称，CLI 与 HTTP 共用
func ValidateCompanies(company1, company2 string) (string, string, error) {
	company1 = strings.TrimSpace(company1)
	company2 = strings.TrimSpace(company2)
	if company1 == "" || company2 == "" {
		return "", "", errors.BadRequest("INVALID_COMPANY", "Both company names are required")
	}
	if utf8.RuneCountInString(company1) > MaxCompanyNameLen || utf8.RuneCountInString(company2) > MaxCompanyNameLen {
		return "", "", errors.BadRequest("INVALID_COMPANY", "Company names must be at most 100 characters")
	}
	return company1, company2, nil
}

// upstreamError 将模型调用错误转换为面向用户的错误
func upstreamError(err error) error {
	switch {
	case stderrors.Is(err, llm.ErrMissingAPIKey):
		return errors.InternalServer("LLM_NOT_CONFIGURED",
			"The language model API key is not configured. Set llm.api_key or the OPENAI_API_KEY environment variable and restart.").WithCause(err)
	case stderrors.Is(err, llm.ErrEmptyResponse):
		return errors.InternalServer("EMPTY_RESPONSE", "No response received from the language model").WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return errors.New(http.StatusGatewayTimeout, "LLM_TIMEOUT", "The language model took too long to respond").WithCause(err)
	default:
		return errors.New(http.StatusBadGateway, "LLM_UPSTREAM_ERROR", err.Error()).WithCause(err)
	}
}
