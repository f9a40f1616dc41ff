package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bootstrap 服务整体配置
type Bootstrap struct {
	Server      *Server      `json:"server" yaml:"server"`
	LLM         *LLM         `json:"llm" yaml:"llm"`
	Data        *Data        `json:"data" yaml:"data"`
	Log         *Log         `json:"log" yaml:"log"`
	Concurrency *Concurrency `json:"concurrency" yaml:"concurrency"`
}

type Server struct {
	Http *HTTP `json:"http" yaml:"http"`
}

type HTTP struct {
	Addr    string `json:"addr" yaml:"addr"`
	Timeout string `json:"timeout" yaml:"timeout"`
}

// LLM 模型相关配置
type LLM struct {
	BaseUrl     string  `json:"base_url" yaml:"base_url"`
	ApiKey      string  `json:"api_key" yaml:"api_key"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float32 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Timeout     string  `json:"timeout" yaml:"timeout"`
}

type Data struct {
	Database *Database `json:"database" yaml:"database"`
}

// Database 为空时不保存对比历史
type Database struct {
	Driver string `json:"driver" yaml:"driver"`
	Source string `json:"source" yaml:"source"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// Concurrency 模型调用限流
type Concurrency struct {
	Qps int `json:"qps" yaml:"qps"`
	Rpm int `json:"rpm" yaml:"rpm"`
}

// APIKeyEnv 配置文件中未设置 api_key 时读取的环境变量
const APIKeyEnv = "OPENAI_API_KEY"

// Load 从 yaml 文件加载配置并补齐默认值
func Load(path string) (*Bootstrap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var bc Bootstrap
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	bc.ApplyDefaults()
	return &bc, nil
}

// ApplyDefaults 填充缺省配置
func (bc *Bootstrap) ApplyDefaults() {
	if bc.Server == nil {
		bc.Server = &Server{}
	}
	if bc.Server.Http == nil {
		bc.Server.Http = &HTTP{}
	}
	if bc.Server.Http.Addr == "" {
		bc.Server.Http.Addr = "0.0.0.0:8000"
	}
	// 模型生成一次对比通常需要数十秒
	if bc.Server.Http.Timeout == "" {
		bc.Server.Http.Timeout = "120s"
	}

	if bc.LLM == nil {
		bc.LLM = &LLM{}
	}
	if bc.LLM.BaseUrl == "" {
		bc.LLM.BaseUrl = "https://api.openai.com/v1"
	}
	if bc.LLM.Model == "" {
		bc.LLM.Model = "gpt-4o-mini"
	}
	if bc.LLM.Temperature == 0 {
		bc.LLM.Temperature = 0.7
	}
	if bc.LLM.MaxTokens == 0 {
		bc.LLM.MaxTokens = 2000
	}
	if bc.LLM.Timeout == "" {
		bc.LLM.Timeout = "90s"
	}
	if bc.LLM.ApiKey == "" {
		bc.LLM.ApiKey = os.Getenv(APIKeyEnv)
	}

	if bc.Data == nil {
		bc.Data = &Data{}
	}
	if bc.Data.Database == nil {
		bc.Data.Database = &Database{}
	}
	if bc.Data.Database.Driver == "" {
		bc.Data.Database.Driver = "postgres"
	}

	if bc.Log == nil {
		bc.Log = &Log{}
	}
	if bc.Log.Level == "" {
		bc.Log.Level = "info"
	}

	if bc.Concurrency == nil {
		bc.Concurrency = &Concurrency{}
	}
	if bc.Concurrency.Rpm == 0 {
		bc.Concurrency.Rpm = 60
	}
	if bc.Concurrency.Qps == 0 {
		bc.Concurrency.Qps = 1
	}
}
