package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"billdiff/internal/bill"
	"billdiff/internal/config"
	"billdiff/internal/excel"
	"billdiff/internal/model"
	"billdiff/internal/server"
	"billdiff/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")

	// 单次对比模式：指定 -file 时不启动服务，直接对比并输出
	filePath = flag.String("file", "", "数据文件路径 (.xlsx/.xls/.csv)；指定后进入单次对比模式")
	month1   = flag.String("month1", "", "第一个对比月份 (格式: YYYY-MM)")
	month2   = flag.String("month2", "", "第二个对比月份 (格式: YYYY-MM)")
	output   = flag.String("output", "", "输出结果文件路径 (.xlsx 或 .csv)")
)

func main() {
	flag.Parse()

	if *filePath != "" {
		os.Exit(runCompare())
	}

	fmt.Println("==========================================")
	fmt.Println("  Billdiff - 账单差异对比工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	// 创建服务器
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n服务已停止")
}

// runCompare 单次对比模式：加载 → 选月 → 对比 → 汇总 → 保存
func runCompare() int {
	table, err := excel.ReadTable(*filePath)
	if err != nil {
		fmt.Printf("加载数据失败: %v\n", err)
		return 1
	}

	records, err := bill.Normalize(table)
	if err != nil {
		fmt.Printf("加载数据失败: %v\n", err)
		return 1
	}
	fmt.Printf("成功加载数据文件，共 %d 条记录\n", len(records))

	months := bill.DistinctMonths(records)
	if len(months) == 0 {
		fmt.Println(model.ErrNoUsableMonth.Error())
		return 1
	}

	fmt.Println("\n数据中可用的月份:")
	for i, month := range months {
		fmt.Printf("%d. %s\n", i+1, month)
	}

	if *month1 == "" || *month2 == "" {
		fmt.Println("\n请通过 -month1 与 -month2 指定要对比的两个月份")
		return 1
	}
	for _, month := range []string{*month1, *month2} {
		if !slices.Contains(months, month) {
			fmt.Printf("月份 %s 没有数据\n", month)
			return 1
		}
	}

	fmt.Printf("\n正在对比 %s 和 %s 的账单差异...\n", *month1, *month2)

	rows := bill.Compare(records, *month1, *month2)
	summary, err := bill.Summarize(rows)
	if err != nil {
		if errors.Is(err, model.ErrEmptyResult) {
			fmt.Println("对比结果为空")
			return 1
		}
		fmt.Printf("汇总失败: %v\n", err)
		return 1
	}

	fmt.Println("\n对比结果:")
	for _, row := range rows {
		fmt.Printf("%s  %s → %s  差异 %s (%s%%)\n",
			row.DeviceID,
			util.FormatAmount(row.AmountMonthA),
			util.FormatAmount(row.AmountMonthB),
			util.FormatSignedAmount(row.Diff),
			row.DiffPercent.String())
	}

	fmt.Println("\n汇总信息:")
	fmt.Printf("总差异金额: %s\n", util.FormatAmount(summary.TotalDiff))
	fmt.Printf("平均差异金额: %s\n", util.FormatAmount(summary.AvgDiff))
	fmt.Printf("差异最大的设备: %s (差异: %s)\n",
		summary.MaxDiffRow.DeviceID, util.FormatAmount(summary.MaxDiffRow.Diff))

	outputPath := *output
	if outputPath == "" {
		outputPath = fmt.Sprintf("bill_comparison_%s_vs_%s.xlsx", *month1, *month2)
	}
	if err := excel.SaveComparison(outputPath, rows, *month1, *month2); err != nil {
		fmt.Printf("保存结果失败: %v\n", err)
		return 1
	}
	fmt.Printf("结果已保存到: %s\n", outputPath)

	return 0
}
