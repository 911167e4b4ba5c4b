package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/commit-assistant/internal/assistant"
	"github.com/roivaz/commit-assistant/internal/assistant/diff"
	"github.com/roivaz/commit-assistant/internal/assistant/llm"
	"github.com/roivaz/commit-assistant/internal/config"
	"github.com/roivaz/commit-assistant/internal/gitrepo"
	"github.com/roivaz/commit-assistant/internal/githubpr"
	"github.com/roivaz/commit-assistant/internal/logging"
	appmcp "github.com/roivaz/commit-assistant/internal/mcp"
	"github.com/roivaz/commit-assistant/internal/mcp/tools"
)

var rootCmd = &cobra.Command{
	Use:           "caa",
	Short:         "AI-assisted git commit messages and pull request descriptions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message for the staged changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := buildEngine(cmd, true)
		if err != nil {
			return err
		}
		apply, _ := cmd.Flags().GetBool("apply")

		ctx, cancel := signalContext()
		defer cancel()
		_, err = engine.RunCommit(ctx, assistant.CommitOptions{
			Scope:      flagScope,
			Brief:      flagBrief,
			Emoji:      flagEmoji,
			Simplified: flagSimplified,
			Force:      flagForce,
			Apply:      apply,
		})
		return err
	},
}

var prCmd = &cobra.Command{
	Use:   "pr [base] [head]",
	Short: "Generate a pull request title and description for base...head",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, head := "main", "HEAD"
		if len(args) > 0 {
			base = args[0]
		}
		if len(args) > 1 {
			head = args[1]
		}

		engine, cfg, repo, err := buildEngine(cmd, true)
		if err != nil {
			return err
		}
		titleHint, _ := cmd.Flags().GetString("title")
		prContext, _ := cmd.Flags().GetString("context")
		create, _ := cmd.Flags().GetBool("create")

		ctx, cancel := signalContext()
		defer cancel()
		summary, err := engine.RunPR(ctx, assistant.PROptions{
			Base:       base,
			Head:       head,
			TitleHint:  titleHint,
			Context:    prContext,
			Simplified: flagSimplified,
			Force:      flagForce,
		})
		if err != nil {
			return err
		}
		if !create {
			return nil
		}
		return publishPR(ctx, cmd, cfg, repo, summary, base, head)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective merged configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadFile(flagConfig); err != nil {
			return err
		}
		out, err := yaml.Marshal(config.Effective())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the drafting tools over the Model Context Protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := buildEngine(cmd, false)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")

		srv := appmcp.New(appmcp.Config{
			ToolAdapters: map[string]appmcp.ToolAdapter{
				"draft_commit_message": &tools.DraftCommitHandler{Service: engine},
				"draft_pr_description": &tools.DraftPRHandler{Service: engine},
				"ping":                 &tools.PingHandler{},
			},
			Options: []server.StreamableHTTPOption{
				server.WithEndpointPath("/mcp/jsonrpc"),
				server.WithStateLess(true),
			},
		})

		httpServer := &http.Server{Addr: addr, Handler: srv.Handler}

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", addr)
			errCh <- httpServer.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

var (
	flagConfig      string
	flagScope       string
	flagBrief       bool
	flagEmoji       bool
	flagSimplified  bool
	flagForce       bool
	flagMaxAttempts int
)

// buildEngine assembles the pipeline for one invocation. interactive selects
// the terminal decider; non-interactive surfaces get the declining one.
func buildEngine(cmd *cobra.Command, interactive bool) (*assistant.Engine, assistant.Config, *gitrepo.Repo, error) {
	if err := config.LoadFile(flagConfig); err != nil {
		return nil, assistant.Config{}, nil, err
	}
	cfg, err := assistant.LoadConfig()
	if err != nil {
		return nil, assistant.Config{}, nil, err
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.MaxAttempts = flagMaxAttempts
	}

	log := logging.New(logging.ForLevel(config.LogLevel()))
	repo := gitrepo.New(gitrepo.RepoConfig{Path: "."})
	collector := diff.NewCollector(repo, log.WithName("diff"))

	gen, err := llm.New(cfg.Provider, log.WithName("llm"))
	if err != nil {
		return nil, assistant.Config{}, nil, err
	}

	decide := assistant.AbortDecider()
	if interactive && !flagForce {
		decide = assistant.TerminalDecider(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	engine := assistant.NewEngine(cfg, collector, repo, gen, decide, log, cmd.OutOrStdout())
	return engine, cfg, repo, nil
}

func publishPR(ctx context.Context, cmd *cobra.Command, cfg assistant.Config, repo *gitrepo.Repo, summary assistant.PRSummary, base, head string) error {
	token := cfg.GitHubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("creating a pull request requires a GitHub token (github_token or GITHUB_TOKEN)")
	}

	remoteURL, err := repo.RemoteURL(ctx)
	if err != nil {
		return err
	}
	owner, name, err := githubpr.ResolveRepo(remoteURL)
	if err != nil {
		return err
	}
	if head == "HEAD" {
		if head, err = repo.CurrentBranch(ctx); err != nil {
			return err
		}
	}

	publisher := githubpr.NewPublisher(githubpr.NewGitHubClient(token))
	url, err := publisher.Create(ctx, owner, name, githubpr.NewPR{
		Title: summary.Title,
		Body:  summary.Body(),
		Base:  base,
		Head:  head,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "created %s\n", url)
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()
	return ctx, cancel
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a config file (default: ./"+config.UserConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVarP(&flagScope, "scope", "s", "", "commit scope, e.g. 'cli'")
	rootCmd.PersistentFlags().BoolVar(&flagBrief, "brief", false, "generate the header line only")
	rootCmd.PersistentFlags().BoolVar(&flagEmoji, "emoji", false, "prefix the header with a matching emoji")
	rootCmd.PersistentFlags().BoolVar(&flagSimplified, "simplified", false, "summarize the diff to file paths and line counts")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "accept the generated message even if validation fails")
	rootCmd.PersistentFlags().IntVar(&flagMaxAttempts, "max-attempts", 3, "generate/validate attempts before giving up")

	commitCmd.Flags().Bool("apply", false, "run git commit with the accepted message")
	prCmd.Flags().BoolP("create", "c", false, "open the pull request on GitHub")
	prCmd.Flags().StringP("title", "t", "", "title override hint passed to the model")
	prCmd.Flags().StringP("context", "b", "", "additional context for the description")
	mcpCmd.Flags().String("addr", "127.0.0.1:8000", "listen address")

	config.Init(rootCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
