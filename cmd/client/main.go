package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamiewatts/five-hundred/internal/client"
	"github.com/jamiewatts/five-hundred/internal/logger"
	"github.com/jamiewatts/five-hundred/internal/ui"
)

// 退出码，与历史客户端保持一致
const (
	exitUsage       = 1
	exitBadServer   = 2
	exitInvalidArgs = 4
)

func main() {
	// 位置参数: name table port [host]
	args := os.Args[1:]
	if len(args) < 3 || len(args) > 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s name table port [host]\n", os.Args[0])
		os.Exit(exitUsage)
	}

	name, table, portArg := args[0], args[1], args[2]
	host := "localhost"
	if len(args) == 4 {
		host = args[3]
	}

	port, err := strconv.Atoi(portArg)
	if err != nil || port < 1 || port > 65535 || name == "" || table == "" {
		fmt.Fprintln(os.Stderr, "Invalid Arguments.")
		os.Exit(exitInvalidArgs)
	}

	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	c := client.NewClient(addr, name, table)
	if err := c.Connect(); err != nil {
		logger.LogError("连接服务器失败: %v", err)
		fmt.Fprintln(os.Stderr, "Bad Server.")
		os.Exit(exitBadServer)
	}

	model := ui.NewModel(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("客户端运行出错: %v", err)
		fmt.Fprintln(os.Stderr, "Protocol Error.")
		os.Exit(ui.ExitProtocolError)
	}

	os.Exit(model.ExitCode())
}
