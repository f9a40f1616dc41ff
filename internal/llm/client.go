package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/company_compare/internal/conf"
)

var (
	// ErrMissingAPIKey 未配置模型 API Key
	ErrMissingAPIKey = errors.New("llm: api key is not configured")
	// ErrEmptyResponse 模型没有返回任何内容
	ErrEmptyResponse = errors.New("llm: empty response")
)

// ChatModel 对话模型，openai.ChatModel 满足该接口
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// NewChatModel 根据配置创建 OpenAI 兼容的对话模型。
// 未配置 API Key 时返回 nil，服务仍可启动，请求时再报错。
func NewChatModel(c *conf.LLM) (ChatModel, error) {
	if c == nil || c.ApiKey == "" {
		return nil, nil
	}

	var timeout time.Duration
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid llm timeout %q: %w", c.Timeout, err)
		}
		timeout = d
	}

	temperature := c.Temperature
	maxTokens := c.MaxTokens
	cm, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		BaseURL:     c.BaseUrl,
		APIKey:      c.ApiKey,
		Model:       c.Model,
		Timeout:     timeout,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return cm, nil
}

// Client 负责向模型请求两家公司的对比分析
type Client struct {
	cm         ChatModel
	model      string
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	log        *log.Helper
}

// NewClient 创建客户端，limit 为 RPM/60，burst 为 QPS
func NewClient(cm ChatModel, lc *conf.LLM, cc *conf.Concurrency, logger log.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cc != nil && cc.Rpm > 0 {
		burst := cc.Qps
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cc.Rpm)/60.0), burst)
	}

	var modelName string
	if lc != nil {
		modelName = lc.Model
	}

	return &Client{
		cm:         cm,
		model:      modelName,
		limiter:    limiter,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
		log:        log.NewHelper(logger),
	}
}

// Compare 返回模型生成的原始 markdown 文本
func (c *Client) Compare(ctx context.Context, company1, company2 string) (string, error) {
	if c.cm == nil {
		c.log.Errorf("%s environment variable is not set and llm.api_key is empty", conf.APIKeyEnv)
		return "", ErrMissingAPIKey
	}

	systemPrompt := SystemPrompt(company1, company2)
	userPrompt := UserPrompt(company1, company2)
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}

	c.log.Infof("sending comparison request, model=%s", c.model)
	c.log.Debugf("system prompt preview: %s...", preview(systemPrompt, 150))
	c.log.Debugf("user prompt: %s", userPrompt)

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", limiterError(ctx, err)
		}

		resp, err := c.cm.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < c.maxRetries {
				lastErr = err
				delay := c.baseDelay * time.Duration(1<<i) // 指数退避
				c.log.Warnf("rate limited by provider, retrying in %v (%d/%d)", delay, i+1, c.maxRetries)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return "", fmt.Errorf("chat completion: %w", err)
		}

		c.logResponse(resp)
		content := strings.TrimSpace(resp.Content)
		if content == "" {
			return "", ErrEmptyResponse
		}
		return resp.Content, nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) logResponse(resp *schema.Message) {
	if meta := resp.ResponseMeta; meta != nil {
		c.log.Infof("finish reason: %s", meta.FinishReason)
		if meta.Usage != nil {
			c.log.Infof("usage: prompt=%d completion=%d total=%d",
				meta.Usage.PromptTokens, meta.Usage.CompletionTokens, meta.Usage.TotalTokens)
		}
	}
	c.log.Infof("content length: %d", len(resp.Content))
	c.log.Debugf("content preview: %s...", preview(resp.Content, 200))
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// limiterError rate.Limiter 在等待时间超过截止时间时直接返回，此时 ctx 尚未过期
func limiterError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("limiter wait: %v: %w", err, context.DeadlineExceeded)
	}
	return fmt.Errorf("limiter wait error: %w", err)
}
