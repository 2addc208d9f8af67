package cli

import (
	"fmt"
	"os"
	"strings"

	"StockBoard/internal/di"
	"StockBoard/internal/domain/models"
	"StockBoard/internal/domain/repository"
	"StockBoard/internal/usecase"
	"StockBoard/pkg/config"
	applogger "StockBoard/pkg/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rootState carries what PersistentPreRunE loaded to the subcommands.
type rootState struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *applogger.Logger
}

func (s *rootState) load() error {
	cfg, err := config.LoadWithEnv(s.configPath)
	if err != nil {
		return err
	}
	if s.debug {
		cfg.Log.Level = "debug"
	}
	l, err := di.ProvideLogger(cfg)
	if err != nil {
		return err
	}
	s.cfg, s.logger = cfg, l
	return nil
}

// dashboard wires the render pipeline; callers must run the cleanup.
func (s *rootState) dashboard() (*usecase.DashboardUseCase, func(), error) {
	return di.InitializeDashboard(s.cfg, s.logger)
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	rootCmd := &cobra.Command{
		Use:   "stockboard",
		Short: "StockBoard - stock dashboard backend",
		Long: `StockBoard looks up listed companies, shows market cap, recent prices and
income statement trends, and scores pasted news for a BUY, SELL or HOLD hint.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return st.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveCmd(cmd, st)
		},
	}

	rootCmd.AddCommand(newServeCmd(st))
	rootCmd.AddCommand(newShowCmd(st))
	rootCmd.AddCommand(newSearchCmd(st))
	rootCmd.AddCommand(newSentimentCmd(st))
	rootCmd.AddCommand(newInteractiveCmd(st))
	rootCmd.AddCommand(newConfigCmd(st))
	rootCmd.AddCommand(newCacheCmd(st))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", "config/config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&st.debug, "debug", false, "Enable debug logging")

	return rootCmd
}

func newServeCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := di.InitializeApp(st.cfg, st.logger)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			defer cleanup()
			return app.Run()
		},
	}
}

func newShowCmd(st *rootState) *cobra.Command {
	var (
		period   string
		news     string
		newsFile string
		newsURL  string
	)
	cmd := &cobra.Command{
		Use:   "show SYMBOL",
		Short: "Render one dashboard in the terminal",
		Long: `Render company information, recent prices, financials and optional news sentiment.
Example: stockboard show AAPL --period annual --news "Apple beats estimates"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !repository.IsValidPeriod(models.Period(strings.ToLower(period))) {
				return fmt.Errorf("--period must be quarterly or annual")
			}
			text, err := newsText(news, newsFile)
			if err != nil {
				return err
			}

			uc, cleanup, err := st.dashboard()
			if err != nil {
				return err
			}
			defer cleanup()

			d := uc.Render(cmd.Context(), models.Session{
				SelectedSymbol: args[0],
				Period:         repository.NormalizePeriod(period),
				NewsText:       text,
				NewsURL:        newsURL,
			}, TransportCLI)
			fmt.Fprint(cmd.OutOrStdout(), RenderDashboard(d, uc.Formatter()))
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", string(models.PeriodQuarterly), "Financials period: quarterly or annual")
	cmd.Flags().StringVar(&news, "news", "", "News text to analyze")
	cmd.Flags().StringVar(&newsFile, "news-file", "", "Read news text from a file")
	cmd.Flags().StringVar(&newsURL, "news-url", "", "Fetch and analyze a news article")
	cmd.MarkFlagsMutuallyExclusive("news", "news-file", "news-url")
	return cmd
}

func newsText(text, file string) (string, error) {
	if file == "" {
		return text, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read news file: %w", err)
	}
	return string(b), nil
}

func newSearchCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "List common stock matching a name or symbol",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, cleanup, err := st.dashboard()
			if err != nil {
				return err
			}
			defer cleanup()

			matches := uc.Fetcher().Search(cmd.Context(), strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matches.")
				return nil
			}
			for _, o := range usecase.Options(matches) {
				fmt.Fprintln(out, o)
			}
			return nil
		},
	}
}

func newSentimentCmd(st *rootState) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "sentiment [TEXT...]",
		Short: "Classify news text and print the recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" && url == "" {
				return fmt.Errorf("provide news text or --url")
			}
			uc, cleanup, err := st.dashboard()
			if err != nil {
				return err
			}
			defer cleanup()

			sec, warns := uc.Sentiment(cmd.Context(), text, url)
			out := cmd.OutOrStdout()
			for _, w := range warns {
				fmt.Fprintln(out, warningStyle.Render("! "+w))
			}
			fmt.Fprintln(out, panelStyle.Render(RenderSentiment(sec)))
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Fetch and analyze a news article")
	return cmd
}

func newInteractiveCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Search, select and analyze in a loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveCmd(cmd, st)
		},
	}
}

func runInteractiveCmd(cmd *cobra.Command, st *rootState) error {
	uc, cleanup, err := st.dashboard()
	if err != nil {
		return err
	}
	defer cleanup()

	sel := NewSelector(st.cfg.UI.Selector, cmd.InOrStdin(), cmd.OutOrStdout())
	return runInteractive(cmd.Context(), uc, sel, cmd.OutOrStdout())
}

func newConfigCmd(st *rootState) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, st.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
			return nil
		},
	})

	return configCmd
}

// showConfig prints the YAML view and whether each credential is present.
// Credential values never appear in the output.
func showConfig(cmd *cobra.Command, cfg *config.Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(b))
	fmt.Fprintln(out, "\ncredentials:")
	for _, c := range []struct {
		name string
		set  bool
	}{
		{"FINNHUB_API_KEY", cfg.Providers.Finnhub.APIKey != ""},
		{"LONGPORT_*", cfg.HasLongport()},
		{"HF_API_TOKEN", cfg.Sentiment.HuggingFace.Token != ""},
		{"LLM_API_KEY", cfg.Sentiment.LLM.APIKey != ""},
		{"REDIS_PASSWORD", cfg.Cache.Redis.Password != ""},
	} {
		state := "not set"
		if c.set {
			state = "set"
		}
		fmt.Fprintf(out, "  %-16s %s\n", c.name, state)
	}
	fmt.Fprintf(out, "\nresolved: quotes=%s sentiment=%s\n", cfg.QuoteProvider(), cfg.SentimentBackend())
	return nil
}

func newCacheCmd(st *rootState) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache management",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every memoized provider result",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, cleanup, err := st.dashboard()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := uc.Fetcher().ClearCache(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheClearedMessage(uc.Fetcher().CacheShared(), st.cfg.Cache.Redis.Enabled))
			return nil
		},
	})
	return cacheCmd
}

// cacheClearedMessage describes what a clear reached. Only a shared cache
// affects a running server.
func cacheClearedMessage(shared, redisEnabled bool) string {
	switch {
	case shared:
		return "Cache cleared."
	case redisEnabled:
		return "Redis is unreachable; only this process's memory cache was cleared. A running server keeps its entries."
	default:
		return "Memory cache cleared (it lives only as long as the process; enable cache.redis to share it)."
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "StockBoard %s\n", Version)
		},
	}
}
