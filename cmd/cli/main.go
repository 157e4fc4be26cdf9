package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/careerai/careerai-go/internal/client/api"
	"github.com/careerai/careerai-go/internal/client/session"
	"github.com/careerai/careerai-go/internal/model"
)

func main() {
	_ = godotenv.Load()

	serverURL := os.Getenv("CAREERAI_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := session.Open(sessionDBPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open session store:", err)
		os.Exit(1)
	}
	defer store.Close()

	auth := session.NewAuthenticator(api.NewClient(serverURL), store, logger)

	ctx := context.Background()
	state, err := auth.Bootstrap(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bootstrap failed:", err)
		os.Exit(1)
	}
	if state.Authenticated {
		fmt.Printf("Welcome back, %s %s (%s)\n", state.Session.Profile.FirstName, state.Session.Profile.LastName, state.Session.Profile.Email)
		if state.Stale {
			// Reconcile the cached snapshot in the background; a failed
			// reconcile logs the user out on the next prompt.
			go func() {
				if s, err := auth.Reconcile(context.Background()); err == nil && !s.Authenticated {
					fmt.Println("\nsession expired, please log in again")
				}
			}()
		}
	}

	fmt.Println("CareerAI CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("careerai > ")
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Println("Available commands: login <email> <password>, register <email> <password> <first> <last> [role], whoami, refresh, logout, exit")

		case "login":
			if len(parts) != 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			sess, err := auth.Login(ctx, parts[1], parts[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			printSession(sess)

		case "register":
			if len(parts) < 5 {
				fmt.Println("Usage: register <email> <password> <first> <last> [role]")
				continue
			}
			req := model.RegisterRequest{
				Email:     parts[1],
				Password:  parts[2],
				FirstName: parts[3],
				LastName:  parts[4],
			}
			if len(parts) > 5 {
				req.Role = model.Role(parts[5])
			}
			sess, err := auth.Register(ctx, req)
			if err != nil {
				fmt.Println("registration failed:", err)
				continue
			}
			printSession(sess)

		case "whoami":
			s, err := auth.Bootstrap(ctx)
			if err != nil || !s.Authenticated {
				fmt.Println("not logged in")
				continue
			}
			p := s.Session.Profile
			fmt.Printf("%s %s <%s> role=%s demo=%v\n", p.FirstName, p.LastName, p.Email, p.Role, p.IsDemo)

		case "refresh":
			token, err := auth.Refresh(ctx)
			if err != nil {
				fmt.Println("refresh failed:", err)
				continue
			}
			fmt.Println("access token refreshed:", truncate(token, 24))

		case "logout":
			if err := auth.Logout(ctx); err != nil {
				fmt.Println("logout failed:", err)
				continue
			}
			fmt.Println("logged out")

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("unknown command:", parts[0])
		}
	}
}

func printSession(sess session.Session) {
	switch {
	case sess.NetworkFallback:
		fmt.Printf("logged in as %s (offline demo session, backend unreachable)\n", sess.Profile.Email)
	case sess.DemoMode:
		fmt.Printf("logged in as %s (demo session)\n", sess.Profile.Email)
	default:
		fmt.Printf("logged in as %s\n", sess.Profile.Email)
	}
}

func sessionDBPath() string {
	if p := os.Getenv("CAREERAI_SESSION_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "careerai-session.db"
	}
	dir := filepath.Join(home, ".careerai")
	_ = os.MkdirAll(dir, 0o700)
	return filepath.Join(dir, "session.db")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
