// Package main runs the interactive 01blog shell: an authenticated client of
// the 01blog REST backend with a locally cached feed and a moderation
// dashboard for admins.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/client/cache"
	"github.com/x3alone/01blog/internal/client/notify"
	"github.com/x3alone/01blog/internal/client/session"
	"github.com/x3alone/01blog/internal/client/state"
	"github.com/x3alone/01blog/internal/client/transport"
	"github.com/x3alone/01blog/internal/config"
	"github.com/x3alone/01blog/internal/logger"
	"github.com/x3alone/01blog/internal/models"
)

var (
	version   string
	buildDate string
)

// errorView renders the error surface for auth failures, server faults and
// connectivity problems, keyed by status code (0 = unreachable).
type errorView struct{}

var errorMessages = map[int]string{
	0:   "Unable to connect to the server. Please try again later.",
	403: "Access denied. You may be banned or lack permissions.",
	404: "The resource you are looking for does not exist.",
	500: "Internal server error.",
}

func (errorView) ToError(code int) {
	msg, ok := errorMessages[code]
	if !ok {
		msg = "An unexpected error occurred."
	}
	fmt.Printf("\n[%d] %s\n", code, msg)
}

// app bundles everything the shell commands need.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	session  *session.Publisher
	api      *api.Client
	feed     *state.Feed
	users    *state.UserList
	reports  *state.ReportList
	coord    *state.Coordinator
	notifier *notify.Notifier
	cache    *cache.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var showVer bool
	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "backend base URL")
	flag.StringVar(&cfg.StatePath, "state", cfg.StatePath, "path to the session state file")
	flag.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "path to the local cache database")
	flag.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "log level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("01blog client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store := session.NewStore(cfg.StatePath)
	if err := store.Load(); err != nil {
		log.Fatal("cannot load session state", zap.Error(err))
	}
	publisher := session.NewPublisher(store)

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &transport.Authenticator{
			Session: publisher,
			Nav:     errorView{},
			Log:     log,
		},
	}

	notifier := notify.New()
	notifier.Subscribe(func(t notify.Toast) {
		fmt.Printf("\n[%s] %s\n", t.Level, t.Message)
	})
	publisher.Subscribe(func(st session.State) {
		log.Debug("session changed",
			zap.Bool("authenticated", st.Authenticated),
			zap.Bool("banned", st.Banned),
			zap.String("role", string(st.Role)))
	})

	cacheDB, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Fatal("cannot open cache", zap.Error(err))
	}
	defer cacheDB.Close()
	cache.StartReadPruner(context.Background(), cacheDB,
		time.Hour,
		7*24*time.Hour,
		log,
	)

	client := api.New(cfg.BaseURL, httpClient, publisher, log)
	coord := state.NewCoordinator(notifier, log)

	a := &app{
		cfg:      cfg,
		log:      log,
		session:  publisher,
		api:      client,
		feed:     state.NewFeed(coord, client),
		users:    state.NewUserList(coord, client, publisher),
		reports:  state.NewReportList(coord, client),
		coord:    coord,
		notifier: notifier,
		cache:    cache.NewStore(cacheDB),
	}
	a.repl()
}

// repl runs the interactive shell loop.
func (a *app) repl() {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("01blog> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			printHelp()
		case "register":
			a.register(ctx, args[1:])
		case "login":
			a.login(ctx, args[1:])
		case "logout":
			_ = a.api.Logout()
			fmt.Println("Logged out")
		case "whoami":
			a.whoami()
		case "feed":
			a.showFeed(ctx, args[1:])
		case "post":
			a.createPost(ctx, line)
		case "like":
			a.withID(args[1:], "like <postID>", func(id int64) {
				if !a.feed.ToggleLike(ctx, id) {
					fmt.Println("Post not found or action already pending")
				}
			})
		case "delete-post":
			a.withID(args[1:], "delete-post <postID>", func(id int64) { a.feed.Delete(ctx, id) })
		case "comments":
			a.withID(args[1:], "comments <postID>", func(id int64) { a.showComments(ctx, id) })
		case "comment":
			a.addComment(ctx, args[1:])
		case "follow":
			a.withID(args[1:], "follow <userID>", func(id int64) { a.report1(a.api.Follow(ctx, id), "Followed") })
		case "unfollow":
			a.withID(args[1:], "unfollow <userID>", func(id int64) { a.report1(a.api.Unfollow(ctx, id), "Unfollowed") })
		case "report":
			a.reportPost(ctx, args[1:])
		case "profile":
			a.withID(args[1:], "profile <userID>", func(id int64) { a.showProfile(ctx, id) })
		case "following":
			a.withID(args[1:], "following <userID>", func(id int64) {
				following, err := a.api.IsFollowing(ctx, id)
				if err != nil {
					fmt.Println("Error:", err)
					return
				}
				fmt.Println(following)
			})
		case "notifications":
			a.showNotifications(ctx, args[1:])
		case "unread":
			count, err := a.api.UnreadCount(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("%d unread\n", count)
		case "read":
			a.withID(args[1:], "read <notificationID>", func(id int64) {
				a.report1(a.api.MarkRead(ctx, id), "Marked read")
			})
		case "read-all":
			a.report1(a.api.MarkAllRead(ctx), "All notifications marked read")
		case "users":
			a.showUsers(ctx)
		case "promote", "demote":
			a.withID(args[1:], args[0]+" <userID>", func(id int64) {
				if !a.users.ToggleRole(ctx, id) {
					fmt.Println("Not permitted or action already pending")
				}
			})
		case "ban":
			a.withID(args[1:], "ban <userID>", func(id int64) {
				if !a.users.ToggleBan(ctx, id) {
					fmt.Println("Not permitted or action already pending")
				}
			})
		case "reports":
			a.showReports(ctx)
		case "dismiss":
			a.withID(args[1:], "dismiss <reportID>", func(id int64) { a.reports.Dismiss(ctx, id) })
		case "takedown":
			a.withID(args[1:], "takedown <postID>", func(id int64) { a.reports.DeleteReportedPost(ctx, id) })
		case "exit":
			a.coord.Wait()
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
	a.coord.Wait()
}

func printHelp() {
	fmt.Println(`Available commands:
  register <user> <pass>    create an account
  login <user> <pass>       sign in
  logout | whoami
  feed [cached]             show the post feed
  post <title> | <content>  publish a post
  like <postID>             toggle a like
  comments <postID>         show a post's comments
  comment <postID> <text>   add a comment
  delete-post <postID>
  follow/unfollow <userID>
  following <userID>        am I following this user?
  profile <userID>          show a user's public profile
  report <postID> <reason>
  notifications [cached] | unread | read <id> | read-all
  users | promote <id> | demote <id> | ban <id>   (admin)
  reports | dismiss <reportID> | takedown <postID> (admin)
  exit`)
}

func (a *app) register(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: register <user> <pass>")
		return
	}
	a.report1(a.api.Register(ctx, args[0], args[1]), "Registered. You can log in now.")
}

func (a *app) login(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: login <user> <pass>")
		return
	}
	if err := a.api.Login(ctx, args[0], args[1]); err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Printf("Welcome, %s!\n", a.session.Username())
}

func (a *app) whoami() {
	if !a.session.IsAuthenticated() {
		fmt.Println("Not logged in")
		return
	}
	st := a.session.State()
	fmt.Printf("%s (id=%d, role=%s)\n", st.Username, st.UserID, st.Role)
}

func (a *app) showFeed(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "cached" {
		posts, err := a.cache.Feed(ctx)
		if err != nil {
			fmt.Println("Cache read failed:", err)
			return
		}
		printPosts(posts)
		return
	}
	if err := a.feed.Refresh(ctx); err != nil {
		fmt.Println("Failed to load posts:", err)
		return
	}
	posts := a.feed.Posts()
	if err := a.cache.ReplaceFeed(ctx, posts); err != nil {
		a.log.Warn("cache write failed", zap.Error(err))
	}
	printPosts(posts)
}

func printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts yet. Be the first to publish!")
		return
	}
	for _, p := range posts {
		liked := " "
		if p.Liked {
			liked = "*"
		}
		fmt.Printf("#%d [%s%d] %s — %s (%s)\n", p.ID, liked, p.Likes, p.Title, p.Username, p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *app) createPost(ctx context.Context, line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "post"))
	title, content, found := strings.Cut(rest, "|")
	if !found {
		fmt.Println("Usage: post <title> | <content>")
		return
	}
	post, err := a.api.CreatePost(ctx, models.CreatePostRequest{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	})
	if err != nil {
		fmt.Println("Failed to publish:", err)
		return
	}
	fmt.Printf("Published post #%d\n", post.ID)
}

func (a *app) showComments(ctx context.Context, postID int64) {
	list := state.NewCommentList(a.coord, a.api, postID)
	if err := list.Refresh(ctx); err != nil {
		fmt.Println("Failed to load comments:", err)
		return
	}
	for _, c := range list.Comments() {
		fmt.Printf("#%d %s: %s\n", c.ID, c.Username, c.Content)
	}
}

func (a *app) addComment(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: comment <postID> <text>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: comment <postID> <text>")
		return
	}
	comment, err := a.api.AddComment(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		fmt.Println("Failed to comment:", err)
		return
	}
	fmt.Printf("Comment #%d added\n", comment.ID)
}

func (a *app) reportPost(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: report <postID> <reason>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: report <postID> <reason>")
		return
	}
	a.report1(a.api.CreateReport(ctx, id, strings.Join(args[1:], " "), ""), "Report filed")
}

func (a *app) showNotifications(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "cached" {
		ns, err := a.cache.Notifications(ctx)
		if err != nil {
			fmt.Println("Cache read failed:", err)
			return
		}
		printNotifications(ns)
		return
	}
	ns, err := a.api.Notifications(ctx)
	if err != nil {
		fmt.Println("Failed to load notifications:", err)
		return
	}
	if err := a.cache.ReplaceNotifications(ctx, ns); err != nil {
		a.log.Warn("cache write failed", zap.Error(err))
	}
	printNotifications(ns)
}

func printNotifications(ns []models.Notification) {
	if len(ns) == 0 {
		fmt.Println("No notifications")
		return
	}
	for _, n := range ns {
		read := " "
		if !n.Read {
			read = "!"
		}
		fmt.Printf("%s #%d %s\n", read, n.ID, n.Message)
	}
}

func (a *app) showProfile(ctx context.Context, userID int64) {
	p, err := a.api.Profile(ctx, userID)
	if err != nil {
		fmt.Println("Failed to load profile:", err)
		return
	}
	banned := ""
	if p.Banned {
		banned = " [banned]"
	}
	fmt.Printf("#%d %s (%s)%s\n", p.ID, p.Username, p.Role, banned)
	fmt.Printf("  followers: %d, following: %d\n", p.FollowersCount, p.FollowingCount)
	if p.FollowedByMe {
		fmt.Println("  you follow this user")
	}
	if p.About != "" {
		fmt.Println(" ", p.About)
	}
}

func (a *app) showUsers(ctx context.Context) {
	if err := a.users.Refresh(ctx); err != nil {
		fmt.Println("Failed to load users:", err)
		return
	}
	for _, u := range a.users.Users() {
		banned := ""
		if u.Banned {
			banned = " [banned]"
		}
		fmt.Printf("#%d %s (%s)%s\n", u.ID, u.Username, u.Role, banned)
	}
}

func (a *app) showReports(ctx context.Context) {
	if err := a.reports.Refresh(ctx); err != nil {
		fmt.Println("Failed to load reports:", err)
		return
	}
	for _, r := range a.reports.Reports() {
		fmt.Printf("#%d %s — post #%d %q by %s (reported by %s)\n",
			r.ID, r.Reason, r.PostID, r.PostTitle, r.PostAuthorUsername, r.ReporterUsername)
	}
}

// withID parses a single numeric argument and runs fn with it.
func (a *app) withID(args []string, usage string, fn func(int64)) {
	if len(args) < 1 {
		fmt.Println("Usage:", usage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage:", usage)
		return
	}
	fn(id)
}

// report1 prints ok on success and the error otherwise.
func (a *app) report1(err error, ok string) {
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(ok)
}
