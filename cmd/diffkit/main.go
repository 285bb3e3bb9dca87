// diffkit — Text Diff & Merge CLI Toolkit
//
// Usage:
//
//	diffkit diff a.txt b.txt             # 比较两个文件
//	diffkit apply a.txt fix.patch        # 应用 patch
//	diffkit merge base.txt a.txt b.txt   # 三方合并
//	diffkit version                      # 显示版本
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	diffkitcfg "github.com/RobinCoderZhao/diffkit/internal/diffkit/config"
	"github.com/RobinCoderZhao/diffkit/internal/diffkit/input"
	"github.com/RobinCoderZhao/diffkit/pkg/differ"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "diffkit",
		Short: "Text Diff & Merge CLI Toolkit",
		Long:  "diffkit 是一个文本比较命令行工具，支持行/词/字符粒度 diff、patch 生成与应用、三方合并、相似度统计和变更高亮。",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "输出调试日志")

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(similarityCmd())
	rootCmd.AddCommand(highlightCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// diffOptions collects the diff command's display flags.
type diffOptions struct {
	labelA     string
	labelB     string
	asPatch    bool
	sideBySide bool
	asJSON     bool
}

func diffCmd() *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff <fileA> <fileB>",
		Short: "比较两个文件并显示差异",
		Long:  "按行、词或字符粒度比较两个文件，支持统一格式、并排显示、patch 输出和 JSON 输出。文件名为 - 时读取标准输入。",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runDiff(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringP("mode", "m", "lines", "比较粒度: lines, words, characters")
	cmd.Flags().Bool("ignore-case", false, "忽略大小写差异")
	cmd.Flags().Bool("ignore-space", false, "忽略空白字符差异")
	cmd.Flags().IntP("context", "c", 3, "上下文行数，负数显示全部")
	cmd.Flags().Int("width", 120, "并排显示总宽度")
	cmd.Flags().Int("max-cells", differ.DefaultMaxCells, "LCS 表格大小上限")
	cmd.Flags().Bool("no-color", false, "禁用彩色输出")
	cmd.Flags().StringVar(&opts.labelA, "label-a", "", "源文件标签，默认为文件路径")
	cmd.Flags().StringVar(&opts.labelB, "label-b", "", "目标文件标签，默认为文件路径")
	cmd.Flags().BoolVarP(&opts.asPatch, "patch", "p", false, "输出可应用的 patch 文本（始终按行比较）")
	cmd.Flags().BoolVarP(&opts.sideBySide, "side-by-side", "y", false, "并排显示")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "输出 JSON 格式")
	return cmd
}

func runDiff(cmd *cobra.Command, pathA, pathB string, opts diffOptions) error {
	if err := input.CheckPaths(pathA, pathB); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	textA, err := input.Read(pathA)
	if err != nil {
		return err
	}
	textB, err := input.Read(pathB)
	if err != nil {
		return err
	}

	labelA, labelB := opts.labelA, opts.labelB
	if labelA == "" {
		labelA = pathA
	}
	if labelB == "" {
		labelB = pathB
	}

	if opts.asPatch {
		patch, err := differ.GeneratePatch(textA, textB, labelA, labelB)
		if err != nil {
			return err
		}
		fmt.Print(patch)
		return nil
	}

	engineOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	result, err := differ.ComputeDiff(textA, textB, engineOpts)
	if err != nil {
		return err
	}
	slog.Debug("diff computed", "ops", len(result.Ops), "similarity", result.Stats.SimilarityPercent)

	if opts.asJSON {
		return printJSON(result)
	}

	if !result.HasChanges() {
		fmt.Println("✅ 两个输入内容一致")
		return nil
	}

	renderOpts := cfg.RenderOptions()
	renderOpts.SourceLabel = labelA
	renderOpts.TargetLabel = labelB
	if opts.sideBySide {
		fmt.Print(differ.RenderSideBySide(result, renderOpts))
	} else {
		fmt.Print(differ.RenderUnified(result, renderOpts))
	}
	fmt.Printf("\n📊 %s\n", result.Summary())
	return nil
}

func applyCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "apply <file> <patch>",
		Short: "将 patch 应用到文件",
		Long:  "读取 patch 并将其应用到目标文件。上下文行或删除行与原文不匹配时报错，原文保持不变。",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runApply(args[0], args[1], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "结果写入文件，默认输出到标准输出")
	return cmd
}

func runApply(sourcePath, patchPath, outputPath string) error {
	if err := input.CheckPaths(sourcePath, patchPath); err != nil {
		return err
	}
	source, err := input.Read(sourcePath)
	if err != nil {
		return err
	}
	patchText, err := input.Read(patchPath)
	if err != nil {
		return err
	}

	result, err := differ.ApplyPatch(source, patchText)
	if err != nil {
		return fmt.Errorf("❌ %w", err)
	}
	slog.Debug("patch applied", "source", sourcePath, "patch", patchPath)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}
		fmt.Printf("✅ 已写入 %s\n", outputPath)
		return nil
	}
	fmt.Print(result)
	return nil
}

func validateCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "validate <patch>",
		Short: "检查 patch 格式",
		Long:  "检查 patch 文本的结构是否合法，列出所有问题及对应行号。",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runValidate(args[0], outputJSON)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "输出 JSON 格式")
	return cmd
}

func runValidate(patchPath string, outputJSON bool) error {
	patchText, err := input.Read(patchPath)
	if err != nil {
		return err
	}

	result := differ.ValidatePatch(patchText)

	if outputJSON {
		if err := printJSON(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Println("✅ patch 格式有效")
	} else {
		fmt.Printf("❌ patch 格式无效，共 %d 个问题:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("   %s\n", e)
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func mergeCmd() *cobra.Command {
	var outputPath string
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "merge <base> <fileA> <fileB>",
		Short: "三方合并",
		Long:  "以 base 为共同祖先合并 fileA 和 fileB 的修改。无法自动合并的位置插入冲突标记，并以非零状态码退出。",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runMerge(args[0], args[1], args[2], outputPath, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "结果写入文件，默认输出到标准输出")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "输出 JSON 格式")
	return cmd
}

func runMerge(basePath, pathA, pathB, outputPath string, outputJSON bool) error {
	if err := input.CheckPaths(basePath, pathA, pathB); err != nil {
		return err
	}
	base, err := input.Read(basePath)
	if err != nil {
		return err
	}
	variantA, err := input.Read(pathA)
	if err != nil {
		return err
	}
	variantB, err := input.Read(pathB)
	if err != nil {
		return err
	}

	result, err := differ.MergeThreeWay(base, variantA, variantB)
	if err != nil {
		return err
	}
	slog.Debug("merge finished", "conflicts", len(result.Conflicts))

	if outputJSON {
		if err := printJSON(result); err != nil {
			return err
		}
		if len(result.Conflicts) > 0 {
			os.Exit(1)
		}
		return nil
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Result), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}
	} else {
		fmt.Print(result.Result)
	}

	if len(result.Conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  %d 处冲突，已插入冲突标记:\n", len(result.Conflicts))
		for _, c := range result.Conflicts {
			fmt.Fprintf(os.Stderr, "   base line %d\n", c.BaseLineIndex+1)
		}
		os.Exit(1)
	}
	if outputPath != "" {
		fmt.Printf("✅ 已写入 %s，无冲突\n", outputPath)
	}
	return nil
}

func similarityCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "similarity <fileA> <fileB>",
		Short: "计算两个文件的相似度",
		Long:  "按行比较两个文件，输出未变更行占较长文件的百分比。",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSimilarity(args[0], args[1], outputJSON)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "输出 JSON 格式")
	return cmd
}

func runSimilarity(pathA, pathB string, outputJSON bool) error {
	if err := input.CheckPaths(pathA, pathB); err != nil {
		return err
	}
	textA, err := input.Read(pathA)
	if err != nil {
		return err
	}
	textB, err := input.Read(pathB)
	if err != nil {
		return err
	}

	pct, err := differ.Similarity(textA, textB)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(map[string]int{"similarity_percent": pct})
	}
	fmt.Printf("📊 相似度: %d%%\n", pct)
	return nil
}

func highlightCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "highlight <fileA> <fileB>",
		Short: "高亮显示两个文件的变更",
		Long:  "在两个文件各自的文本中标注变更: 删除的单元包裹在 [-…-] 中，新增的单元包裹在 [+…+] 中。",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runHighlight(cmd, args[0], args[1], outputJSON)
		},
	}

	cmd.Flags().StringP("mode", "m", "lines", "比较粒度: lines, words, characters")
	cmd.Flags().Bool("ignore-case", false, "忽略大小写差异")
	cmd.Flags().Bool("ignore-space", false, "忽略空白字符差异")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "输出 JSON 格式")
	return cmd
}

func runHighlight(cmd *cobra.Command, pathA, pathB string, outputJSON bool) error {
	if err := input.CheckPaths(pathA, pathB); err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	textA, err := input.Read(pathA)
	if err != nil {
		return err
	}
	textB, err := input.Read(pathB)
	if err != nil {
		return err
	}

	hl, err := differ.Highlight(textA, textB, opts)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(hl)
	}
	fmt.Printf("📄 %s:\n%s\n\n", pathA, hl.TextA)
	fmt.Printf("📄 %s:\n%s\n", pathB, hl.TextB)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("diffkit %s\n", version)
		},
	}
}

// resolveConfig loads the configuration files and applies any explicitly
// set command-line flags on top. Flags left at their defaults never
// override file or environment values.
func resolveConfig(cmd *cobra.Command) (diffkitcfg.DiffkitConfig, error) {
	cfg, err := diffkitcfg.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Diff.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("ignore-case") {
		cfg.Diff.IgnoreCase, _ = flags.GetBool("ignore-case")
	}
	if flags.Changed("ignore-space") {
		cfg.Diff.IgnoreWhitespace, _ = flags.GetBool("ignore-space")
	}
	if flags.Changed("context") {
		cfg.Render.Context, _ = flags.GetInt("context")
	}
	if flags.Changed("width") {
		cfg.Render.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("max-cells") {
		cfg.Limits.MaxCells, _ = flags.GetInt("max-cells")
	}
	if flags.Changed("no-color") {
		if noColor, _ := flags.GetBool("no-color"); noColor {
			cfg.Render.Color = false
		}
	}
	return cfg, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
