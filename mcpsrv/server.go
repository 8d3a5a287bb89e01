package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/mcpsrv/dto"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
	"go.uber.org/zap"
)

type catalogCategoriesArgs struct {
	Query  string `json:"query,omitempty" jsonschema:"Optional substring to narrow the categories"`
	Offset int    `json:"offset,omitempty" jsonschema:"Optional pagination offset"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Optional page size limit"`
}

type catalogFilterArgs struct {
	Mode  string `json:"mode,omitempty" jsonschema:"Filter mode: none, exact, substring or category (a name from catalog_categories, matched as listed). Empty uses the storefront default view"`
	Text  string `json:"text,omitempty" jsonschema:"Category name or fragment, case-insensitive"`
	Limit int    `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
}

type orderLinkArgs struct {
	ID    string `json:"id,omitempty" jsonschema:"Product id"`
	Index *int   `json:"index,omitempty" jsonschema:"Catalog index as returned by catalog_filter, used when id is empty"`
}

type customOrderLinkArgs struct {
	Requirement string `json:"requirement" jsonschema:"Free-text description of the custom piece"`
}

type catalogCategoriesOutput struct {
	Query      string         `json:"query"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	NextOffset int            `json:"next_offset"`
	HasMore    bool           `json:"has_more"`
	Total      int            `json:"total"`
	Items      []dto.Category `json:"items"`
}

type catalogFilterOutput struct {
	Mode  string        `json:"mode"`
	Text  string        `json:"text"`
	Total int           `json:"total"`
	Items []dto.Product `json:"items"`
}

// CatalogLoader yields the session catalog; *catalog.Store satisfies it.
type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

type ServerOptions struct {
	EnableOrders  bool
	Composer      order.Composer
	DefaultFilter types.Filter
	Currency      string
	Logger        *zap.Logger
}

func (o *ServerOptions) currency() string {
	if o.Currency == "" {
		return render.DefaultCurrency
	}
	return o.Currency
}

func NewServer(loader CatalogLoader, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "craftshelf", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "catalog_categories",
		Description: "List the shop's product categories with product counts.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args catalogCategoriesArgs) (*mcp.CallToolResult, catalogCategoriesOutput, error) {
		return catalogCategoriesHandler(ctx, req, args, loader, opts)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "catalog_filter",
		Description: "List products, optionally filtered by exact category or category fragment.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args catalogFilterArgs) (*mcp.CallToolResult, catalogFilterOutput, error) {
		return catalogFilterHandler(ctx, req, args, loader, opts)
	})

	if opts.EnableOrders {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "order_link",
			Description: "Compose the WhatsApp order message and deep link for a product.",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args orderLinkArgs) (*mcp.CallToolResult, dto.OrderLink, error) {
			return orderLinkHandler(ctx, req, args, loader, opts)
		})

		mcp.AddTool(server, &mcp.Tool{
			Name:        "custom_order_link",
			Description: "Compose the WhatsApp deep link for a custom order request.",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args customOrderLinkArgs) (*mcp.CallToolResult, dto.OrderLink, error) {
			return customOrderLinkHandler(ctx, req, args, opts)
		})
	}

	return server
}

func loadCatalog(ctx context.Context, loader CatalogLoader, opts *ServerOptions) (catalog.Catalog, *mcp.CallToolResult) {
	c, err := loader.Load(context.WithoutCancel(ctx))
	if err != nil {
		opts.Logger.Error("catalog unavailable", zap.Error(err))
		return catalog.Catalog{}, errorToolResult("catalog unavailable: failed to load products")
	}
	return c, nil
}

func catalogCategoriesHandler(ctx context.Context, _ *mcp.CallToolRequest, args catalogCategoriesArgs, loader CatalogLoader, opts *ServerOptions) (*mcp.CallToolResult, catalogCategoriesOutput, error) {
	c, failed := loadCatalog(ctx, loader, opts)
	if failed != nil {
		return failed, catalogCategoriesOutput{}, nil
	}

	query := strings.TrimSpace(strings.ToLower(args.Query))
	all := dto.FromCatalogCategories(c)
	filtered := make([]dto.Category, 0, len(all))
	for _, cat := range all {
		if query == "" || strings.Contains(cat.Name, query) {
			filtered = append(filtered, cat)
		}
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	offset := min(max(args.Offset, 0), len(filtered))
	end := min(offset+limit, len(filtered))
	hasMore := end < len(filtered)
	nextOffset := end
	if !hasMore {
		nextOffset = -1
	}

	return nil, catalogCategoriesOutput{
		Query:      args.Query,
		Offset:     offset,
		Limit:      limit,
		NextOffset: nextOffset,
		HasMore:    hasMore,
		Total:      len(filtered),
		Items:      filtered[offset:end],
	}, nil
}

func catalogFilterHandler(ctx context.Context, _ *mcp.CallToolRequest, args catalogFilterArgs, loader CatalogLoader, opts *ServerOptions) (*mcp.CallToolResult, catalogFilterOutput, error) {
	f, err := parseFilter(args.Mode, args.Text, opts.DefaultFilter)
	if err != nil {
		return errorToolResult(err.Error()), catalogFilterOutput{}, nil
	}

	c, failed := loadCatalog(ctx, loader, opts)
	if failed != nil {
		return failed, catalogFilterOutput{}, nil
	}

	positions := applyLimit(c.Matches(f), args.Limit)
	return nil, catalogFilterOutput{
		Mode:  f.Mode.String(),
		Text:  f.Text,
		Total: len(positions),
		Items: dto.FromMatches(c, positions, opts.currency()),
	}, nil
}

func orderLinkHandler(ctx context.Context, _ *mcp.CallToolRequest, args orderLinkArgs, loader CatalogLoader, opts *ServerOptions) (*mcp.CallToolResult, dto.OrderLink, error) {
	if strings.TrimSpace(args.ID) == "" && args.Index == nil {
		return errorToolResult("id or index is required"), dto.OrderLink{}, nil
	}

	c, failed := loadCatalog(ctx, loader, opts)
	if failed != nil {
		return failed, dto.OrderLink{}, nil
	}

	var (
		index int
		ok    bool
	)
	if strings.TrimSpace(args.ID) != "" {
		index, ok = c.Find(args.ID)
	} else {
		index = *args.Index
		_, ok = c.At(index)
	}
	if !ok {
		return errorToolResult("product not found"), dto.OrderLink{}, nil
	}

	p, _ := c.At(index)
	item := dto.FromProduct(index, p, opts.currency())
	return nil, dto.OrderLink{
		Link:    opts.Composer.ProductLink(p),
		Message: order.ProductMessage(p, opts.Composer.Currency),
		Product: &item,
	}, nil
}

func customOrderLinkHandler(_ context.Context, _ *mcp.CallToolRequest, args customOrderLinkArgs, opts *ServerOptions) (*mcp.CallToolResult, dto.OrderLink, error) {
	msg, err := order.CustomMessage(args.Requirement, opts.Composer.StartingPrice, opts.Composer.Currency)
	if errors.Is(err, order.ErrEmptyRequirement) {
		return errorToolResult("requirement is required"), dto.OrderLink{}, nil
	}
	if err != nil {
		return errorToolResult(err.Error()), dto.OrderLink{}, nil
	}
	return nil, dto.OrderLink{
		Link:    order.DeepLink(opts.Composer.Base, opts.Composer.Destination, msg),
		Message: msg,
	}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func applyLimit(items []int, limit int) []int {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

// parseFilter maps tool arguments to a filter. With no mode, text selects a
// substring search and blank text selects the storefront default view.
func parseFilter(rawMode, text string, fallback types.Filter) (types.Filter, error) {
	trimmed := strings.TrimSpace(text)
	if strings.TrimSpace(rawMode) == "" {
		if trimmed == "" {
			return fallback, nil
		}
		return types.Substring(trimmed), nil
	}

	mode, ok := types.ParseFilterMode(rawMode)
	if !ok {
		return types.Filter{}, fmt.Errorf("invalid mode %q; expected none|exact|substring|category", rawMode)
	}
	if mode != types.NoFilter && trimmed == "" {
		return types.Filter{}, fmt.Errorf("text is required for mode %q", mode)
	}
	if mode == types.ListedCategory {
		// category names come verbatim from catalog_categories
		return types.Category(text), nil
	}
	return types.Filter{Mode: mode, Text: trimmed}, nil
}
