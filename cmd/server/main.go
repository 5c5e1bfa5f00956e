package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jamiewatts/five-hundred/internal/config"
	"github.com/jamiewatts/five-hundred/internal/deck"
	"github.com/jamiewatts/five-hundred/internal/server"
)

// 退出码，与历史服务端保持一致
const (
	exitUsage       = 1
	exitInvalidPort = 4
	exitPortError   = 5
	exitDeckError   = 6
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	port := flag.String("port", "", "监听端口，覆盖配置文件")
	greeting := flag.String("greeting", "", "欢迎语，覆盖配置文件")
	deckFile := flag.String("deck", "", "牌序文件路径，覆盖配置文件")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config path] [-port port] [-greeting text] [-deck path]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(exitUsage)
	}

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *port != "" {
		p, err := strconv.Atoi(*port)
		if err != nil || p < 1 || p > 65535 {
			fmt.Fprintln(os.Stderr, "Invalid Port")
			os.Exit(exitInvalidPort)
		}
		cfg.Server.Port = p
	}
	if *greeting != "" {
		cfg.Server.Greeting = *greeting
	}
	if *deckFile != "" {
		cfg.Server.DeckFile = *deckFile
	}

	// 加载牌序
	decks, err := deck.Load(cfg.Server.DeckFile)
	if err != nil {
		log.Printf("加载牌序失败: %v", err)
		fmt.Fprintln(os.Stderr, "Deck Error")
		os.Exit(exitDeckError)
	}
	log.Printf("🂠 已加载 %d 局牌序", decks.Len())

	srv := server.NewServer(cfg, decks)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("正在关闭服务器...")
		srv.Shutdown()
		os.Exit(0)
	}()

	log.Println("🎮 500 服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Printf("服务器启动失败: %v", err)
		fmt.Fprintln(os.Stderr, "Port Error")
		os.Exit(exitPortError)
	}
}
