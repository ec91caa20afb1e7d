package main

import (
	"flag"
	"log"

	"github.com/decker502/timemanager/pkg/app"
	"github.com/decker502/timemanager/pkg/config"
	"github.com/decker502/timemanager/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "从磁盘读取配置文件（默认使用嵌入的 data/time_manager.yaml）")
	noSession  = flag.Bool("no-session", false, "不恢复也不保存会话")
	mute       = flag.Bool("mute", false, "倒计时结束时不播放提示音")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（配置文件）
	embedded.Init(dataFS)

	timerApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		NoSession:  *noSession,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth*2, config.GameWindowHeight*2)
	ebiten.SetWindowTitle("Time Manager")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the loop
	// Update() 每 tick 推进一次时间管理器，直到窗口关闭
	if err := ebiten.RunGame(timerApp); err != nil {
		log.Fatal(err)
	}

	if err := timerApp.SaveSession(); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
}
