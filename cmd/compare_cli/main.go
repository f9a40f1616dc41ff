package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/company_compare/internal/biz"
	"github.com/iWorld-y/company_compare/internal/conf"
	"github.com/iWorld-y/company_compare/internal/llm"
	"github.com/iWorld-y/company_compare/internal/logger"
	"github.com/iWorld-y/company_compare/internal/render"
	"github.com/iWorld-y/company_compare/internal/report"
)

func main() {
	confPath := flag.String("conf", "configs/config.yaml", "config path")
	company1 := flag.String("company1", "", "first company name, e.g. Apple")
	company2 := flag.String("company2", "", "second company name, e.g. Microsoft")
	out := flag.String("out", "index.html", "output html report")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout for the comparison")
	flag.Parse()

	name1, name2, err := biz.ValidateCompanies(*company1, *company2)
	if err != nil {
		fmt.Printf("Error: %s\n", errors.FromError(err).Message)
		fmt.Println("Usage: compare_cli -company1 Apple -company2 Microsoft [-conf configs/config.yaml] [-out index.html]")
		os.Exit(1)
	}

	// 1. 加载配置
	cfg, err := conf.Load(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Infof("开始对比: %s vs %s", name1, name2)

	// 3. 初始化 LLM
	chatModel, err := llm.NewChatModel(cfg.LLM)
	if err != nil {
		logger.Log.Fatalf("LLM 初始化失败: %v", err)
	}
	client := llm.NewClient(chatModel, cfg.LLM, cfg.Concurrency, logger.NewKratosLogger(logger.Log))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// 4. 请求模型并解析
	raw, err := client.Compare(ctx, name1, name2)
	if err != nil {
		logger.Log.Fatalf("对比失败: %v", err)
	}

	sections, err := report.Parse(raw)
	if err != nil {
		logger.Log.Fatalf("解析结果失败: %v", err)
	}
	for _, s := range sections {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		if s.Table != nil {
			logger.Log.Infof("段落: %s [表格 %d 列 x %d 行]", title, len(s.Table.Headers), len(s.Table.Rows))
		} else {
			logger.Log.Infof("段落: %s", title)
		}
	}

	// 5. 生成 HTML
	page := render.NewPage(name1, name2, time.Now().Format(time.DateOnly), sections)
	if err := render.WriteReportFile(*out, page); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}

	logger.Log.Infof("✅ 对比报告生成完毕: %s", *out)
}
