package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/client"
	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

const usage = `commands:
  /join <room>                 switch room
  /new <title> | <content>     create a note
  /open <id>                   open a note
  /edit <title> | <content>    edit the open note
  /del [id]                    delete a note (default: open note)
  /list                        list notes
  /who                         list participants
  /leave                       leave the room and quit
  /quit                        quit`

func main() {
	if err := mainInner(); err != nil {
		log.Error().Err(err).Msg("client failed")
		os.Exit(1)
	}
}

func mainInner() error {
	addr := flag.String("addr", "127.0.0.1:8080", "server address")
	room := flag.String("room", "lobby", "room to join")
	name := flag.String("name", "", "display name")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	applog.Init(applog.Config{Level: *level, Pretty: true})

	base, err := url.Parse("http://" + *addr)
	if err != nil {
		return err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	api, err := client.NewHTTPNotesAPI(base.String(), &http.Client{Jar: jar, Timeout: 10 * time.Second})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	username := *name
	if username != "" {
		if username, err = api.Handshake(ctx, username); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
	}

	wsURL := base.JoinPath("api/ws")
	wsURL.Scheme = "ws"
	header := http.Header{}
	for _, c := range jar.Cookies(base) {
		header.Add("Cookie", c.String())
	}
	tr, err := client.Dial(ctx, wsURL.String(), header)
	if err != nil {
		return err
	}
	defer tr.Close()

	out := &printer{}
	ctrl := client.NewController(api, tr, client.Config{
		Username: username,
		OnError:  func(err error) { out.println("! " + err.Error()) },
	})
	defer ctrl.Close()

	welcomed := make(chan struct{})
	var once sync.Once
	go func() {
		err := tr.Listen(ctx, func(evt domain.Event) {
			ctrl.HandleEvent(evt)
			switch evt.Type {
			case domain.EventWelcome:
				once.Do(func() { close(welcomed) })
			case domain.EventUserJoined, domain.EventUserLeft:
				out.println("* " + evt.Message)
			case domain.EventUserTyping:
				out.println("~ " + evt.Username + " is typing")
			case domain.EventNoteCreated, domain.EventNoteUpdated:
				if evt.Note == nil {
					return
				}
				out.println(fmt.Sprintf("# %s %q", evt.Type, evt.Note.Title))
			case domain.EventNoteDeleted:
				out.println("# note deleted " + evt.NoteID)
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("connection lost")
		}
		cancel()
	}()

	select {
	case <-welcomed:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return errors.New("no welcome from server")
	}

	if err := ctrl.Join(ctx, domain.RoomID(*room)); err != nil {
		return err
	}
	out.println(fmt.Sprintf("joined %s as %s (session %s)", *room, domain.NormalizeUsername(username, ""), ctrl.SessionID()))
	out.println(usage)

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			ctrl.FlushEdits()
			return nil
		case line, ok := <-lines:
			if !ok {
				ctrl.FlushEdits()
				return nil
			}
			quit, err := runCommand(ctx, ctrl, out, strings.TrimSpace(line))
			if err != nil {
				out.println("! " + err.Error())
			}
			if quit {
				return nil
			}
		}
	}
}

func runCommand(ctx context.Context, ctrl *client.Controller, out *printer, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "":
		return false, nil
	case "/quit":
		ctrl.FlushEdits()
		return true, nil
	case "/leave":
		return true, ctrl.Leave()
	case "/join":
		return false, ctrl.Join(ctx, domain.RoomID(arg))
	case "/new":
		title, content := splitNote(arg)
		n, err := ctrl.Create(ctx, title, content)
		if err != nil {
			return false, err
		}
		out.println("created " + n.ID)
	case "/open":
		if err := ctrl.Open(arg); err != nil {
			return false, err
		}
		n, _ := ctrl.Current()
		out.println(fmt.Sprintf("%s\n%s", n.Title, n.Content))
	case "/edit":
		n, ok := ctrl.Current()
		if !ok {
			return false, errors.New("no open note")
		}
		title, content := splitNote(arg)
		return false, ctrl.Edit(n.ID, title, content)
	case "/del":
		id := arg
		if id == "" {
			n, ok := ctrl.Current()
			if !ok {
				return false, errors.New("no open note")
			}
			id = n.ID
		}
		return false, ctrl.Delete(ctx, id)
	case "/list":
		for _, n := range ctrl.Notes() {
			out.println(fmt.Sprintf("%s  %-30s  by %s", n.ID, n.Title, n.CreatedBy))
		}
	case "/who":
		for _, p := range ctrl.Participants() {
			out.println(fmt.Sprintf("%s  %s", p.Username, p.ID))
		}
		if typing := ctrl.Typing(); len(typing) > 0 {
			out.println("typing: " + strings.Join(typing, ", "))
		}
	default:
		out.println(usage)
	}
	return false, nil
}

func splitNote(arg string) (string, string) {
	title, content, _ := strings.Cut(arg, "|")
	return strings.TrimSpace(title), strings.TrimSpace(content)
}

type printer struct {
	mu sync.Mutex
}

func (p *printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Println(s)
}
