package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
)

const requirementWarning = "Please describe your requirement"

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "category",
			Usage: "show only this category (exact, case-insensitive)",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "show categories containing this text",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "show the whole catalog",
		},
	}
}

// filterFrom reads the filter flags. Without any of them the configured default
// category applies, as on the storefront's first view.
func filterFrom(cmd *cli.Command, fallback types.Filter) (types.Filter, error) {
	category := strings.TrimSpace(cmd.String("category"))
	search := strings.TrimSpace(cmd.String("search"))
	all := cmd.Bool("all")

	set := 0
	for _, on := range []bool{category != "", search != "", all} {
		if on {
			set++
		}
	}
	if set > 1 {
		return types.Filter{}, NewExitError(ExitUsageError, "use only one of --category, --search and --all", nil)
	}

	switch {
	case category != "":
		return types.Exact(category), nil
	case search != "":
		return types.Substring(search), nil
	case all:
		return types.Filter{}, nil
	default:
		return fallback, nil
	}
}

// selectCategory maps a --category value onto the listed category it names, so a
// sheet group with stray spaces can be passed back as "categories" prints it.
func selectCategory(cmd *cli.Command, c catalog.Catalog, f types.Filter) types.Filter {
	if strings.TrimSpace(cmd.String("category")) == "" || f.Mode != types.ExactCategory {
		return f
	}
	want := strings.ToLower(strings.TrimSpace(f.Text))
	for _, name := range c.Categories() {
		if strings.TrimSpace(name) == want {
			return types.Category(name)
		}
	}
	return f
}

func (a *App) listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print the products of a category or search",
		Flags: append(filterFlags(), &cli.BoolFlag{
			Name:    "details",
			Aliases: []string{"d"},
			Usage:   "include product descriptions",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := a.setup(cmd, "-")
			if err != nil {
				return err
			}
			f, err := filterFrom(cmd, e.cfg.DefaultFilter())
			if err != nil {
				return err
			}

			c, loadErr := e.store.Load(ctx)
			f = selectCategory(cmd, c, f)
			surface := render.TextSurface{W: a.Stdout, WithDetails: cmd.Bool("details")}
			render.Show(surface, c, loadErr, f, e.cfg.RenderOptions())
			if loadErr != nil {
				e.logger.Warn("catalog unavailable", zap.Error(loadErr))
				return classify("catalog unavailable", loadErr)
			}
			return nil
		},
	}
}

func (a *App) categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "Print the catalog's categories with product counts",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := a.setup(cmd, "-")
			if err != nil {
				return err
			}
			c, err := e.store.Load(ctx)
			if err != nil {
				return classify("catalog unavailable", err)
			}
			for _, name := range c.Categories() {
				fmt.Fprintf(a.Stdout, "%-28s %d\n", strings.TrimSpace(name), len(c.InCategory(name)))
			}
			return nil
		},
	}
}

func (a *App) orderCommand() *cli.Command {
	return &cli.Command{
		Name:      "order",
		Usage:     "Print (or open) the WhatsApp order link for a listed product",
		ArgsUsage: "<index>",
		Description: `The index is the one printed by "list" with the same filter flags.
Use --id to pick a product by its catalog id instead.`,
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:  "id",
				Usage: "order the product with this id",
			},
			&cli.BoolFlag{
				Name:    "open",
				Aliases: []string{"o"},
				Usage:   "open the link in WhatsApp after the order feedback",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := a.setup(cmd, "-")
			if err != nil {
				return err
			}
			f, err := filterFrom(cmd, e.cfg.DefaultFilter())
			if err != nil {
				return err
			}

			c, err := e.store.Load(ctx)
			if err != nil {
				return classify("catalog unavailable", err)
			}
			f = selectCategory(cmd, c, f)

			var position int
			if id := strings.TrimSpace(cmd.String("id")); id != "" {
				pos, ok := c.Find(id)
				if !ok {
					return NewExitError(ExitNotFoundError, "no product with id "+id, nil)
				}
				position = pos
			} else {
				if cmd.NArg() != 1 {
					return NewExitError(ExitUsageError, "order needs exactly one product index", nil)
				}
				index, convErr := strconv.Atoi(cmd.Args().First())
				if convErr != nil {
					return NewExitError(ExitUsageError, "index must be a number", convErr)
				}
				positions := c.Matches(f)
				if index < 0 || index >= len(positions) {
					return NewExitError(ExitNotFoundError, fmt.Sprintf("no product at index %d", index), nil)
				}
				position = positions[index]
			}

			p, _ := c.At(position)
			link := e.cfg.Composer().ProductLink(p)
			fmt.Fprintln(a.Stdout, link)
			if !cmd.Bool("open") {
				return nil
			}

			err = e.cfg.Sequence().Run(ctx, a.Sleeper, a.printFeedback, func() error {
				return a.Opener.Open(link)
			})
			if err != nil {
				e.logger.Warn("order link open failed", zap.String("product", p.ID()), zap.Error(err))
				return classify("could not open WhatsApp", err)
			}
			e.logger.Info("order link opened", zap.String("product", p.ID()))
			fmt.Fprintln(a.Stdout, "WhatsApp opened")
			return nil
		},
	}
}

func (a *App) printFeedback(state order.FeedbackState) {
	switch state {
	case order.Pending:
		fmt.Fprintln(a.Stdout, "⏳ Opening WhatsApp…")
	case order.Confirmed:
		fmt.Fprintln(a.Stdout, "✓ Order sent")
	}
}

func (a *App) customOrderCommand() *cli.Command {
	return &cli.Command{
		Name:      "custom-order",
		Usage:     "Print (or open) a WhatsApp link describing a custom piece",
		ArgsUsage: "<requirement...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "open",
				Aliases: []string{"o"},
				Usage:   "open the link in WhatsApp",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			e, err := a.setup(cmd, "-")
			if err != nil {
				return err
			}

			requirement := strings.Join(cmd.Args().Slice(), " ")
			link, err := e.cfg.Composer().CustomLink(requirement)
			if errors.Is(err, order.ErrEmptyRequirement) {
				return NewExitError(ExitUsageError, requirementWarning, nil)
			}
			if err != nil {
				return classify("could not compose the order", err)
			}

			fmt.Fprintln(a.Stdout, link)
			if !cmd.Bool("open") {
				return nil
			}
			if err := a.Opener.Open(link); err != nil {
				return NewExitError(ExitGeneralError, "could not open WhatsApp", err)
			}
			e.logger.Info("custom order link opened")
			fmt.Fprintln(a.Stdout, "WhatsApp opened")
			return nil
		},
	}
}
