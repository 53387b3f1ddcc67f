package cli

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/resilia/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	EditProfile(ctx context.Context) error
	SetPhoto(ctx context.Context, path string, clear bool) error
	Mood(ctx context.Context, label string) error
	Moods(ctx context.Context) error
	Trends(ctx context.Context) error
	Chat(ctx context.Context, title string) error
	History(ctx context.Context, all bool) error
	Status(ctx context.Context) error
	Reset(ctx context.Context, force bool) error
}

// Root greets the user and runs the REPL until exit or end of input.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Resilia (type 'help' for commands)")
	printlnFn(models.Affirmations[rand.IntN(len(models.Affirmations))])
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// runREPL starts a simple read–eval–print loop for the Resilia CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Command prompts read from the same reader, so answers and commands share
// one input stream.
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login [email]        authenticate
//	  - status               device and store details
//	  - reset                erase all data on this device
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - whoami               show the profile
//	  - profile              edit the profile
//	  - photo <path>|clear   set or remove the profile photo
//	  - mood [label|number]  log a mood check-in
//	  - moods                mood history
//	  - trends               mood statistics
//	  - chat [title]         record a conversation
//	  - history [all]        recent conversations
//	  - logout               end the session
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("resilia %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, profile, photo, mood, moods, trends, chat, history, status, reset, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, reset, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx, arg)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "profile":
			err = a.EditProfile(ctx)

		case "photo":
			if len(args) == 0 {
				printlnFn("Usage: photo <path> | photo clear")
				continue
			}
			if arg == "clear" {
				err = a.SetPhoto(ctx, "", true)
			} else {
				err = a.SetPhoto(ctx, arg, false)
			}

		case "mood":
			err = a.Mood(ctx, arg)

		case "moods":
			err = a.Moods(ctx)

		case "trends":
			err = a.Trends(ctx)

		case "chat":
			err = a.Chat(ctx, arg)

		case "history":
			err = a.History(ctx, arg == "all")

		case "status":
			err = a.Status(ctx)

		case "reset":
			err = a.Reset(ctx, false)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil && !IsReported(err) {
			printlnFn("Error:", err)
		}
	}
}
