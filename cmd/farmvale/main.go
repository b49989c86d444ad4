// farmvale 农场模拟游戏
//
// 用法：
//
//	farmvale play                 - 打开游戏窗口
//	farmvale simulate --days 7    - 无界面模拟若干天并写入农场日志
//	farmvale journal              - 查看农场日志
//	farmvale inspect              - 终端检查器
//
// 全局参数：
//
//	--config <path>  - 配置文件路径（默认按 ~/.farmvale、./configs、内嵌默认查找）
//	--seed <value>   - 随机种子（0 = 使用配置或当前时间）
//	--db <path>      - 农场日志数据库（默认 ~/.farmvale/journal.db）
//	--verbose        - 输出调试日志
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "farmvale",
	Short: "Farmvale - a small farming sim",
	Long: `Farmvale is a small farming game: till the soil, water and plant crops,
chop trees, sell the harvest and sleep to start a new day.

Examples:
  farmvale play
  farmvale simulate --days 7 --seed 42
  farmvale journal --limit 20
  farmvale inspect`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config (YAML)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.farmvale/journal.db", "Path to farm journal database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(inspectCmd)
}
