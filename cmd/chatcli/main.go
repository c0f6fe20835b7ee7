// Terminal chat client against a running relay. Mirrors what the website
// widget does: transcript, busy gate, trailing history, contact fallback.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cogniqaiamruthap-cyber/artedental/internal/business"
	"github.com/cogniqaiamruthap-cyber/artedental/internal/chat"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	relayURL := os.Getenv("RELAY_URL")
	if relayURL == "" {
		relayURL = "http://localhost:8787/"
	}
	businessID := os.Getenv("BUSINESS")
	if businessID == "" {
		businessID = business.DefaultID
	}

	session := chat.NewSession(relayURL, businessID)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(chat.Greeting)
	fmt.Println(`(type "/clear" to reset, "/quit" to leave)`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit", "/exit":
			return
		case "/clear":
			if session.Clear(func() bool { return confirm(scanner) }) {
				fmt.Println(chat.Greeting)
			}
			continue
		}

		reply, err := session.Send(context.Background(), line)
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			continue
		case errors.Is(err, chat.ErrBusy):
			fmt.Println("(still waiting for the previous reply)")
			continue
		}
		fmt.Println(reply)
	}
}

func confirm(scanner *bufio.Scanner) bool {
	fmt.Print("Clear your conversation history? [y/N] ")
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
