package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"recipe-finder/internal/client"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"

	"github.com/spf13/cobra"
)

type options struct {
	server  string
	timeout time.Duration
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 建立命令樹，輸出寫入 out
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "recipectl",
		Short:        "Command-line client for the recipe finder",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&opts.server, "server", client.DefaultServer, "recipe finder server URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		newCuisinesCmd(opts),
		newSearchCmd(opts),
		newSessionCmd(opts),
		newFavCmd(opts),
	)
	return root
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.timeout)
}

func newCuisinesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cuisines",
		Short: "List cuisine filter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cuisines, err := opts.client().Cuisines(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cuisines {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var q search.Query

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recipes by cuisine, name and ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := opts.client().Search(cmd.Context(), q)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if resp.Fallback {
				fmt.Fprintf(w, "No results found! Showing similar recipes for %q...\n", resp.FallbackKey)
			}
			printRecipes(w, resp.Recipes)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Cuisine, "cuisine", search.AllCuisines, "cuisine filter")
	cmd.Flags().StringVar(&q.Name, "name", "", "recipe name substring")
	cmd.Flags().StringVar(&q.Ingredients, "ingredients", "", "comma separated ingredients")
	return cmd
}

func newSessionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage favorites sessions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Create a favorites session and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.client().CreateSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	})
	return cmd
}

func newFavCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Add and list favorites",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <session> <recipe name>",
			Short: "Add a recipe to a session's favorites",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args[1:], " ")
				resp, err := opts.client().AddFavorite(cmd.Context(), args[0], name)
				if err != nil {
					return err
				}
				if resp.Added {
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "'%s' is already a favorite\n", name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list <session>",
			Short: "List a session's favorites in catalog order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := opts.client().Favorites(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(resp.Recipes) == 0 {
					fmt.Fprintln(w, "No favorites yet")
					return nil
				}
				for _, r := range resp.Recipes {
					fmt.Fprintf(w, "- %s (%s) ⭐ %.1f\n", r.Name, r.Cuisine, r.Rating)
				}
				return nil
			},
		},
	)
	return cmd
}

// printRecipes 以表格輸出搜尋結果
func printRecipes(w io.Writer, recipes []common.RecipeView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCUISINE\tRATING\tDIFFICULTY\tMATCH\tINGREDIENTS")
	for _, r := range recipes {
		match := "-"
		if r.Similarity != nil {
			match = fmt.Sprintf("%.2f", *r.Similarity)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\t%s\n", r.Name, r.Cuisine, r.Rating, r.Difficulty, match, r.IngredientsText)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d recipe(s)\n", len(recipes))
}

// execute 以指定參數執行命令
func execute(ctx context.Context, out io.Writer, args ...string) error {
	root := newRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
