package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhodgson615/gitripper/internal/config"
	"github.com/dhodgson615/gitripper/internal/domain"
	"github.com/dhodgson615/gitripper/internal/extract"
	"github.com/dhodgson615/gitripper/internal/github"
	"github.com/dhodgson615/gitripper/internal/repo"
	"github.com/dhodgson615/gitripper/internal/utils"
	"github.com/dhodgson615/gitripper/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitripper [url]",
	Short: "Copy a GitHub repository into a fresh local git repo",
	Long: `Gitripper downloads a GitHub repository's contents as a ZIP archive,
extracts them into a local directory, removes any embedded .git metadata,
and initializes a new git repository with a single initial commit.

The produced repository carries no history from the original.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.gitripper/config.yaml)")
	rootCmd.PersistentFlags().String("branch", "", "Branch/ref to fetch (default: repo default branch)")
	rootCmd.PersistentFlags().String("token", "", "GitHub personal access token (default: $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("dest", "", "Destination directory (default: ./<repo>-copy)")
	rootCmd.PersistentFlags().String("author-name", "", "git user.name for the initial commit")
	rootCmd.PersistentFlags().String("author-email", "", "git user.email for the initial commit")
	rootCmd.PersistentFlags().String("remote", "", "Set git remote origin after the initial commit")
	rootCmd.PersistentFlags().String("backend", "", "Repository init backend: embedded or cli")
	rootCmd.PersistentFlags().IntP("workers", "j", 0, "Parallel extraction workers (0=auto)")
	rootCmd.PersistentFlags().Bool("force", false, "Overwrite destination if it exists")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("git.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("git.author_name", rootCmd.PersistentFlags().Lookup("author-name"))
	_ = viper.BindPFlag("git.author_email", rootCmd.PersistentFlags().Lookup("author-email"))
	_ = viper.BindPFlag("extract.workers", rootCmd.PersistentFlags().Lookup("workers"))

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	url, err := resolveURL(args)
	if err != nil {
		return err
	}

	info, err := github.ParseURL(url)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	dest, _ := cmd.Flags().GetString("dest")
	if dest == "" {
		dest = info.Repo + "-copy"
	}
	if err := prepareDest(dest, force); err != nil {
		return err
	}

	if cfg.Git.Backend == repo.BackendCLI {
		if err := repo.CheckGitInstalled(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	client := github.NewClient(github.ClientOptions{
		HTTPClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		Token:      token,
		Logger:     log.WithComponent("github"),
		Progress:   !verbose,
	})

	branch, _ := cmd.Flags().GetString("branch")
	if branch == "" {
		branch, err = client.DefaultBranch(ctx, info.Owner, info.Repo)
		if err != nil {
			log.Warn().Err(err).Msg("Could not determine default branch, using 'main'")
			branch = "main"
		} else {
			log.Info().Str("branch", branch).Msg("Using default branch")
		}
	}

	tmpDir, err := os.MkdirTemp("", "gitripper-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	zipPath, err := client.DownloadArchive(ctx, info.Owner, info.Repo, branch, tmpDir)
	if err != nil {
		return fmt.Errorf("failed to download repository archive: %w", err)
	}
	log.Debug().Str("path", zipPath).Msg("Downloaded archive")

	extractor := extract.New(extract.Options{
		Workers:           cfg.Extract.Workers,
		ParallelThreshold: cfg.ParallelThresholdBytes(),
		Logger:            log.WithComponent("extract"),
	})
	if err := extractor.Extract(ctx, zipPath, dest); err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	if err := repo.RemoveEmbeddedGit(dest, log); err != nil {
		return err
	}

	log.Info().Msg("Initializing new git repository...")
	initializer, err := repo.NewInitializer(cfg.Git.Backend, log.WithComponent("repo"))
	if err != nil {
		return err
	}

	remote, _ := cmd.Flags().GetString("remote")
	err = initializer.Init(ctx, dest, repo.InitOptions{
		AuthorName:  cfg.Git.AuthorName,
		AuthorEmail: cfg.Git.AuthorEmail,
		Remote:      remote,
	})
	if err != nil {
		return err
	}

	log.Info().Str("dest", dest).Msg("Done. Repository copied")
	log.Info().Msg("Note: this repository has no history from the original repo.")
	return nil
}

// resolveURL takes the URL from the positional argument, or prompts for one
// when run interactively without arguments.
func resolveURL(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	fmt.Print("Enter repository URL: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", domain.ErrInvalidURL
	}
	return strings.TrimSpace(line), nil
}

// prepareDest refuses a non-empty destination unless force is set, in which
// case the destination is removed first.
func prepareDest(dest string, force bool) error {
	entries, err := os.ReadDir(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if len(entries) > 0 && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrDestExists, dest)
	}
	if force {
		return os.RemoveAll(dest)
	}
	return nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that all system dependencies are properly installed and configured.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking system dependencies...")
		allPassed := true

		fmt.Print("  GitHub API reachable: ")
		if checkGitHub() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		fmt.Print("  git executable: ")
		if err := repo.CheckGitInstalled(); err == nil {
			fmt.Println("OK")
		} else {
			fmt.Println("NOT FOUND (cli backend will be unavailable)")
		}

		fmt.Print("  Write permissions: ")
		if checkWritePermissions() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		fmt.Print("  Config file: ")
		if _, err := config.Load(); err != nil {
			fmt.Printf("WARN (%v)\n", err)
		} else {
			fmt.Println("OK")
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All critical checks passed!")
		} else {
			fmt.Println("Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkGitHub checks if the GitHub API can be reached
func checkGitHub() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, github.DefaultAPIBaseURL, nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// checkWritePermissions checks that the working directory is writable
func checkWritePermissions() bool {
	tmp, err := os.CreateTemp(".", ".gitripper-doctor-*")
	if err != nil {
		return false
	}
	name := tmp.Name()
	tmp.Close()
	os.Remove(name)
	return true
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault()
		if err != nil {
			return err
		}
		fmt.Printf("Config file at %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
