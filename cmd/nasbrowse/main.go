// nasbrowse is a command-line client for the document store.
//
// Sub-commands:
//
//	nasbrowse login     Authenticate and save a token
//	nasbrowse logout    Revoke and delete the saved token
//	nasbrowse ls        List folder contents (sorted/filtered)
//	nasbrowse crumbs    Print the breadcrumb trail of a folder
//	nasbrowse mkdir     Create a folder
//	nasbrowse rm        Delete files and folders as one batch
//	nasbrowse upload    Upload local files into a folder
//	nasbrowse download  Download a file
//	nasbrowse search    Search files and folders
//	nasbrowse stats     Show system statistics
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/RovaFananganana/frontend/internal/browser"
	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/internal/prefs"
	"github.com/RovaFananganana/frontend/pkg/content"
	"github.com/RovaFananganana/frontend/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		cmdLogin(args)
	case "logout":
		cmdLogout(args)
	case "ls":
		cmdList(args)
	case "crumbs":
		cmdCrumbs(args)
	case "mkdir":
		cmdMkdir(args)
	case "rm":
		cmdRemove(args)
	case "upload":
		cmdUpload(args)
	case "download":
		cmdDownload(args)
	case "search":
		cmdSearch(args)
	case "stats":
		cmdStats(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nasbrowse <login|logout|ls|crumbs|mkdir|rm|upload|download|search|stats> [flags]")
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (server *string, logLevel *string) {
	server = fs.String("server", envOr("NASBROWSE_SERVER", "http://localhost:5001"), "Server URL")
	logLevel = fs.String("log-level", "error", "Log level: debug, info, warn, error")
	return server, logLevel
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newClient builds an authenticated client from the saved token or the
// NASBROWSE_TOKEN environment variable.
func newClient(server, logLevel string) *content.Client {
	if err := logging.Init(logLevel, "console"); err != nil {
		fatal("%v", err)
	}

	token := os.Getenv("NASBROWSE_TOKEN")
	if token == "" {
		if tf, err := content.LoadToken(); err == nil {
			if tf.IsExpired(0) {
				fatal("saved token has expired, run 'nasbrowse login'")
			}
			token = tf.Token
		}
	}

	return content.New(content.Config{BaseURL: server, AuthToken: token})
}

// newSession wires a browsing session with file-backed preferences and
// stderr notifications.
func newSession(client *content.Client) *browser.Session {
	store, err := prefs.NewFileStore(prefs.DefaultPath())
	if err != nil {
		logging.Warn("preferences unavailable, using defaults")
		sess := browser.NewSession(browser.Options{Source: client, Notifier: stderrNotifier{}})
		return sess
	}

	sess := browser.NewSession(browser.Options{
		Source:   client,
		Notifier: stderrNotifier{},
		Prefs:    store,
	})
	sess.InitializePreferences()
	return sess
}

// stderrNotifier prints outcome messages for interactive use.
type stderrNotifier struct{}

func (stderrNotifier) Success(msg string) { fmt.Fprintln(os.Stderr, msg) }
func (stderrNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "Error: "+msg) }
func (stderrNotifier) Info(msg string)    { fmt.Fprintln(os.Stderr, msg) }

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	username := fs.String("user", "", "Username (prompted when empty)")
	fs.Parse(args)

	if err := logging.Init(*logLevel, "console"); err != nil {
		fatal("%v", err)
	}

	user := *username
	if user == "" {
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fatal("read username: %v", err)
		}
		user = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fatal("read password: %v", err)
	}

	client := content.New(content.Config{BaseURL: *server})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := client.Login(ctx, user, string(pw))
	if err != nil {
		fatal("login failed: %v", err)
	}

	tf := &content.TokenFile{
		Token:     data.Token,
		ExpiresAt: data.ExpiresAt,
		Server:    *server,
		Username:  data.User.Username,
	}
	if err := content.SaveToken(tf); err != nil {
		fatal("save token: %v", err)
	}
	fmt.Printf("Logged in as %s\n", data.User.Username)
}

func cmdLogout(args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	fs.Parse(args)

	client := newClient(*server, *logLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Logout(ctx); err != nil {
		logging.Warn("server-side logout failed, removing local token anyway")
	}
	if err := content.DeleteToken(); err != nil {
		fatal("delete token: %v", err)
	}
	fmt.Println("Logged out")
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	folderID := fs.Int64("folder", 0, "Folder id (0 = root)")
	sortBy := fs.String("sort", "", "Sort field: name, date, size, type")
	order := fs.String("order", "", "Sort order: asc, desc")
	typeFilter := fs.String("type", "", "Only show files with this extension")
	fs.Parse(args)

	sess := newSession(newClient(*server, *logLevel))
	if *sortBy != "" || *order != "" {
		sess.SetSorting(*sortBy, *order)
	}
	if *typeFilter != "" {
		sess.SetFilterType(*typeFilter)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.NavigateToFolder(ctx, *folderID); err != nil {
		os.Exit(1)
	}

	for _, f := range sess.FilteredFolders() {
		fmt.Printf("%10d  %-6s  %s/\n", f.ID, "dir", f.Name)
	}
	for _, f := range sess.FilteredFiles() {
		fmt.Printf("%10d  %6d  %s\n", f.ID, f.Size, f.Name)
	}
}

func cmdCrumbs(args []string) {
	fs := flag.NewFlagSet("crumbs", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	folderID := fs.Int64("folder", 0, "Folder id")
	fs.Parse(args)

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.UpdateBreadcrumbs(ctx, *folderID); err != nil {
		fatal("%v", err)
	}

	parts := make([]string, 0, len(sess.Breadcrumbs()))
	for _, crumb := range sess.Breadcrumbs() {
		parts = append(parts, crumb.Name)
	}
	fmt.Println(strings.Join(parts, " > "))
}

func cmdMkdir(args []string) {
	fs := flag.NewFlagSet("mkdir", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	folderID := fs.Int64("folder", 0, "Parent folder id")
	name := fs.String("name", "", "Folder name")
	fs.Parse(args)

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.NavigateToFolder(ctx, *folderID); err != nil {
		os.Exit(1)
	}
	if err := sess.CreateFolder(ctx, *name); err != nil {
		os.Exit(1)
	}
}

func cmdRemove(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	folderID := fs.Int64("folder", 0, "Folder the items live in")
	var fileIDs, dirIDs idList
	fs.Var(&fileIDs, "file", "File id to delete (repeatable)")
	fs.Var(&dirIDs, "dir", "Folder id to delete (repeatable)")
	fs.Parse(args)

	if len(fileIDs) == 0 && len(dirIDs) == 0 {
		fatal("nothing to delete, pass -file or -dir")
	}

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := sess.NavigateToFolder(ctx, *folderID); err != nil {
		os.Exit(1)
	}
	for _, id := range dirIDs {
		sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFolder, ID: id}, true)
	}
	for _, id := range fileIDs {
		sess.ToggleSelection(models.SelectionEntry{Kind: models.KindFile, ID: id}, true)
	}

	result := sess.DeleteSelected(ctx)
	for _, failure := range result.Failed {
		fmt.Fprintf(os.Stderr, "failed: %s %d: %v\n", failure.Entry.Kind, failure.Entry.ID, failure.Err)
	}
	if !result.AllSucceeded() {
		os.Exit(1)
	}
}

func cmdUpload(args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	folderID := fs.Int64("folder", 0, "Destination folder id")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("no files given")
	}

	var files []models.UploadFile
	var handles []*os.File
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			fatal("open %s: %v", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			fatal("stat %s: %v", path, err)
		}
		handles = append(handles, f)
		files = append(files, models.UploadFile{
			Name:    filepath.Base(path),
			Size:    info.Size(),
			Content: f,
		})
	}
	defer func() {
		for _, f := range handles {
			f.Close()
		}
	}()

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := sess.NavigateToFolder(ctx, *folderID); err != nil {
		os.Exit(1)
	}
	if err := sess.UploadFiles(ctx, files); err != nil {
		os.Exit(1)
	}
}

func cmdDownload(args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	fileID := fs.Int64("file", 0, "File id")
	out := fs.String("out", "", "Output path (defaults to the file name)")
	fs.Parse(args)

	client := newClient(*server, *logLevel)
	sess := newSession(client)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	file, err := client.GetFile(ctx, *fileID)
	if err != nil {
		fatal("%v", err)
	}

	path := *out
	if path == "" {
		path = file.Name
	}
	f, err := os.Create(path)
	if err != nil {
		fatal("create %s: %v", path, err)
	}
	defer f.Close()

	if err := sess.DownloadFile(ctx, *file, f); err != nil {
		os.Remove(path)
		os.Exit(1)
	}
}

func cmdSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	query := fs.String("q", "", "Search query")
	typeFilter := fs.String("type", "", "File type filter")
	folderID := fs.Int64("folder", 0, "Folder to search under")
	fs.Parse(args)

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.NavigateToFolder(ctx, *folderID); err != nil {
		os.Exit(1)
	}
	if err := sess.SearchFiles(ctx, *query, *typeFilter); err != nil {
		os.Exit(1)
	}

	results := sess.SearchResults()
	if results == nil {
		return
	}
	for _, f := range results.Folders {
		fmt.Printf("%10d  %-6s  %s/\n", f.ID, "dir", f.Name)
	}
	for _, f := range results.Files {
		fmt.Printf("%10d  %6d  %s\n", f.ID, f.Size, f.Name)
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	server, logLevel := commonFlags(fs)
	fs.Parse(args)

	sess := newSession(newClient(*server, *logLevel))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.LoadSystemStats(ctx); err != nil {
		os.Exit(1)
	}

	stats := sess.Stats()
	fmt.Printf("Files:     %d\n", stats.TotalFiles)
	fmt.Printf("Folders:   %d\n", stats.TotalFolders)
	fmt.Printf("Total:     %d bytes\n", stats.TotalSize)
	fmt.Printf("Used:      %d bytes\n", stats.UsedSpace)
	fmt.Printf("Available: %d bytes\n", stats.AvailableSpace)
}

// idList collects repeated -file/-dir flags.
type idList []int64

func (l *idList) String() string {
	parts := make([]string, len(*l))
	for i, id := range *l {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(value string) error {
	var id int64
	if _, err := fmt.Sscanf(value, "%d", &id); err != nil {
		return fmt.Errorf("invalid id %q", value)
	}
	*l = append(*l, id)
	return nil
}
