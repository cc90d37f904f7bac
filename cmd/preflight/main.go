// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	chat := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
	targetsFile := strings.TrimSpace(os.Getenv("TARGETS_FILE"))
	addr := strings.TrimSpace(os.Getenv("API_ADDR"))
	slack := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK"))

	if token == "" {
		fail("TELEGRAM_BOT_TOKEN is empty (monitor will refuse to start).")
	}
	if chat == "" {
		fail("TELEGRAM_CHAT_ID is empty (monitor will refuse to start).")
	}
	if _, err := strconv.ParseInt(chat, 10, 64); err != nil {
		warn("TELEGRAM_CHAT_ID is not numeric; inbound command filtering will drop everything.")
	} else {
		ok("TELEGRAM_CHAT_ID=" + chat)
	}

	if targetsFile == "" {
		targetsFile = "targets.yaml"
	}
	if _, err := os.Stat(targetsFile); err != nil {
		fail("targets file " + targetsFile + " not readable: " + err.Error())
	}
	ok("targets file " + targetsFile + " present")

	if addr == "" {
		warn("API_ADDR is empty; the status API will bind its default.")
	} else {
		ok("API_ADDR=" + addr)
	}

	if slack == "" {
		warn("SLACK_WEBHOOK empty — alerts go to Telegram only.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	ok("preflight passed")
}
