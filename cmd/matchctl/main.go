// matchctl is a command line client for the matchstack API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/client"
	"github.com/matchstack-dev/matchstack/internal/conversation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	c := client.New(client.ConfigFromEnv())
	ctx := context.Background()
	args := os.Args[2:]

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, c, args)
	case "me":
		err = runMe(ctx, c)
	case "creators":
		err = runCreators(ctx, c, args)
	case "chat":
		err = runChat(ctx, c, args, os.Stdin, os.Stdout)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	exitOnError(err)
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("MATCHSTACK_PASSWORD"), "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return errors.New("usage: matchctl login -email <email> -password <password>")
	}
	session, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (token expires %s)\n", session.User.Email, session.Auth.ExpiresAt.Format("2006-01-02 15:04"))
	fmt.Printf("export MATCHSTACK_TOKEN=%s\n", session.Auth.Token)
	return nil
}

func runMe(ctx context.Context, c *client.Client) error {
	me, err := c.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  %s\n", me.User.ID, me.User.Email, me.User.Status)
	if me.Company != nil {
		fmt.Printf("  company: %s (%s)\n", me.Company.Name, me.Company.ID)
	}
	if me.Creator != nil {
		fmt.Printf("  creator: %s (%s)\n", me.Creator.Name, me.Creator.ID)
	}
	return nil
}

func runCreators(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("creators", flag.ExitOnError)
	var q dto.DirectoryQuery
	fs.StringVar(&q.RoleType, "role", "", "writer, editor or ghostwriter")
	fs.StringVar(&q.PricingTier, "tier", "", "pricing tier: $, $$ or $$$")
	fs.StringVar(&q.Availability, "availability", "", "open, limited or booked")
	fs.StringVar(&q.Engagement, "engagement", "", "high, medium or low")
	fs.StringVar(&q.Search, "q", "", "free text search")
	fs.StringVar(&q.Niches, "niches", "", "comma separated niches, any may match")
	_ = fs.Parse(args)

	page, err := c.ListCreators(ctx, q)
	if err != nil {
		return err
	}
	for _, cr := range page.Creators {
		engagement := string(cr.Engagement)
		if engagement == "" {
			engagement = "-"
		}
		fmt.Printf("  %s  %-24s %-12s %-4s %-8s %-7s %s\n",
			cr.ID, cr.Name, cr.RoleType, cr.PricingTier, cr.Availability, engagement, strings.Join(cr.Niches, ","))
	}
	fmt.Printf("%d of %d creators\n", page.Count, page.Total)
	return nil
}

func runChat(ctx context.Context, c *client.Client, args []string, in io.Reader, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: matchctl chat <match-id>")
	}
	me, err := c.Me(ctx)
	if err != nil {
		return err
	}

	conv, err := conversation.Open(ctx, c, args[0], me.User.ID)
	switch conv.State() {
	case conversation.StateNotFound:
		return errors.New("match not found")
	case conversation.StateNoAccess:
		return errors.New("you are not a party to this match")
	case conversation.StateLoadFailed:
		return err
	}

	fmt.Fprintf(out, "Conversation with %s on %q\n", conv.Access().Counterpart(conv.Parties()), conv.Parties().BriefTitle)
	fmt.Fprintln(out, "Commands: /retry N, /refresh, /quit")
	printEntries(out, conv)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/refresh":
			if err := conv.Refresh(ctx); err != nil {
				fmt.Fprintf(out, "refresh failed: %v\n", err)
			}
			printEntries(out, conv)
		case strings.HasPrefix(line, "/retry"):
			retry(ctx, out, conv, strings.TrimSpace(strings.TrimPrefix(line, "/retry")))
		default:
			if _, err := conv.Send(ctx, line); err != nil {
				fmt.Fprintf(out, "not sent (%v); /retry %d to try again\n", err, len(conv.Entries()))
				continue
			}
			printEntries(out, conv)
		}
	}
}

func retry(ctx context.Context, out io.Writer, conv *conversation.Conversation, arg string) {
	n, err := strconv.Atoi(arg)
	entries := conv.Entries()
	if err != nil || n < 1 || n > len(entries) {
		fmt.Fprintln(out, "usage: /retry N, where N is the number of a failed message")
		return
	}
	if err := conv.Retry(ctx, entries[n-1].LocalID); err != nil {
		fmt.Fprintf(out, "retry failed: %v\n", err)
		return
	}
	printEntries(out, conv)
}

func printEntries(out io.Writer, conv *conversation.Conversation) {
	for i, e := range conv.Entries() {
		who := conv.Access().Counterpart(conv.Parties())
		if conv.IsMine(e) {
			who = "you"
		}
		marker := ""
		if e.Delivery != conversation.Confirmed {
			marker = " [" + e.Delivery.String() + "]"
		}
		fmt.Fprintf(out, "%3d  %s  %s: %s%s\n", i+1, e.Message.CreatedAt.Local().Format("Jan 2 15:04"), who, e.Message.Body, marker)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: matchctl <command> [flags]

Commands:
  login -email E -password P   authenticate and print a token
  me                           show the current account
  creators [filters]           browse the creator directory
  chat <match-id>              open a match conversation

Environment:
  MATCHSTACK_URL               API base URL (default http://localhost:8080)
  MATCHSTACK_TOKEN             bearer token from login
  MATCHSTACK_TIMEOUT_SECONDS   request timeout`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
