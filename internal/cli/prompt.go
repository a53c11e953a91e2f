package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/upb/ai-proxy/services/article"
)

func newPromptCmd() *cobra.Command {
	opts := &article.PromptOptions{}

	cmd := &cobra.Command{
		Use:     "prompt",
		Short:   "Print the article-writing prompt for the given keywords",
		Example: `  ai-proxy prompt --keywords "remote work" --style blog --language en`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := article.BuildPrompt(*opts)
			if err != nil {
				return withExitCode(ExitRuntimeError, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	addArticleFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("keywords")
	return cmd
}
