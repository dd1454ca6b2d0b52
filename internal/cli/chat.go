package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/haven-app/haven/internal/assistant"
	"github.com/haven-app/haven/internal/keyring"
)

type ChatCmd struct {
	Message string `arg:"" optional:"" help:"Single message to send. Starts an interactive session if omitted."`
}

func (c *ChatCmd) Run(ctx *Context) error {
	client := assistant.New(resolveAPIKey(ctx))

	if strings.TrimSpace(c.Message) != "" {
		fmt.Println(client.Reply(context.Background(), c.Message))
		return nil
	}

	fmt.Println("haven is listening. Type your message, or 'quit' to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		fmt.Println(client.Reply(context.Background(), line))
		fmt.Println()
	}
	return scanner.Err()
}

// resolveAPIKey prefers the OS keyring and falls back to the
// environment. An empty key is fine: the assistant degrades to its
// canned supportive reply.
func resolveAPIKey(ctx *Context) string {
	if key, err := keyring.GetAPIKey(); err == nil {
		return key
	}
	return ctx.Config.GeminiAPIKey
}
