package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/upb/ai-proxy/app"
	"github.com/upb/ai-proxy/config"
	"github.com/upb/ai-proxy/internal/observability"
	"github.com/upb/ai-proxy/models"
	"github.com/upb/ai-proxy/services/article"
)

var headingText = color.New(color.FgCyan, color.Bold)

type generateOptions struct {
	provider string
	apiKey   string
	prompt   string
	model    string
	proxyURL string
	verbose  bool
	raw      bool
	article  article.PromptOptions
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Send one prompt and print the provider's reply",
		Long: `Send one prompt and print the provider's reply.

With --keywords the prompt is an article-writing request built from
--length, --style, --type and --language, and the reply is printed as
scored titles, tags and content.`,
		Example: `  ai-proxy generate --provider qwen --api-key $DASHSCOPE_KEY --prompt "Hello"
  echo "Hello" | ai-proxy generate --provider gemini --api-key $GEMINI_KEY --prompt - --proxy socks5://127.0.0.1:1080
  ai-proxy generate --provider chatgpt --api-key $OPENAI_KEY --keywords "home coffee" --length short --type tutorial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.provider, "provider", "", "provider: "+strings.Join(providerNames(), ", "))
	flags.StringVar(&opts.apiKey, "api-key", "", "provider API key")
	flags.StringVar(&opts.prompt, "prompt", "", `prompt text, or "-" to read stdin`)
	flags.StringVar(&opts.model, "model", "", "model identifier (default: provider default)")
	flags.StringVar(&opts.proxyURL, "proxy", "", "outbound proxy URL (http, https, socks5, socks5h)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log dispatch stages to stderr")
	addArticleFlags(cmd, &opts.article)
	flags.BoolVar(&opts.raw, "raw", false, "with --keywords, print the reply without parsing it")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("api-key")
	cmd.MarkFlagsOneRequired("prompt", "keywords")
	cmd.MarkFlagsMutuallyExclusive("prompt", "keywords")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()

	prompt := opts.prompt
	if opts.article.Keywords != "" {
		built, err := article.BuildPrompt(opts.article)
		if err != nil {
			return withExitCode(ExitRuntimeError, err)
		}
		prompt = built
	} else if prompt == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return withExitCode(ExitRuntimeError, fmt.Errorf("read prompt: %w", err))
		}
		prompt = strings.TrimRight(string(data), "\r\n")
	}
	if prompt == "" {
		return errors.New("prompt must not be empty")
	}

	cfg, err := config.New(ctx)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	level := "error"
	if opts.verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(level, "console")
	if err != nil {
		return withExitCode(ExitRuntimeError, err)
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return withExitCode(ExitRuntimeError, err)
	}
	defer deps.Close(ctx)

	req := &models.AIProxyRequest{
		Provider: opts.provider,
		APIKey:   opts.apiKey,
		Prompt:   prompt,
		Model:    opts.model,
	}
	if opts.proxyURL != "" {
		req.ProxyURL = &opts.proxyURL
	}

	resp, err := deps.Dispatcher.Dispatch(ctx, deps.Defaults.Apply(req))
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	if !resp.Success {
		return withExitCode(ExitProviderError, errors.New(*resp.Error))
	}

	out := cmd.OutOrStdout()
	if opts.article.Keywords == "" || opts.raw {
		fmt.Fprintln(out, *resp.Content)
		return nil
	}

	parsed, err := article.ParseArticle(*resp.Content)
	if err != nil {
		return withExitCode(ExitProviderError, fmt.Errorf("AI response is not a valid article: %w", err))
	}
	printArticle(out, parsed)
	return nil
}

func addArticleFlags(cmd *cobra.Command, opts *article.PromptOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.Keywords, "keywords", "", "article keywords; builds an article-writing prompt")
	flags.StringVar(&opts.ArticleLength, "length", article.DefaultArticleLength, "article length: short, medium, long")
	flags.StringVar(&opts.WritingStyle, "style", article.DefaultWritingStyle, "writing style: article, blog, report, creative, marketing")
	flags.StringVar(&opts.ArticleType, "type", article.DefaultArticleType, "article type: blog, news, product, seo, tutorial")
	flags.StringVar(&opts.Language, "language", article.DefaultLanguage, "output language code")
}

func printArticle(w io.Writer, a *article.Article) {
	headingText.Fprintln(w, "Titles")
	for i, t := range a.Titles {
		fmt.Fprintf(w, "  %d. [%g] %s\n", i+1, t.Score, t.Title)
	}
	fmt.Fprintln(w)
	headingText.Fprintln(w, "Tags")
	fmt.Fprintf(w, "  %s\n\n", strings.Join(a.Tags, ", "))
	headingText.Fprintln(w, "Content")
	fmt.Fprintln(w, a.Content)
}

func providerNames() []string {
	kinds := models.ProviderKinds()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}
	return names
}
