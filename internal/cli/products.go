package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/identity"
	"storefront/internal/infra/qrcode"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// ProductsOptions holds flags for the products commands.
type ProductsOptions struct {
	*RootOptions
	Output string
}

// ProductSummary is one catalog row.
type ProductSummary struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Price     float64              `json:"price"`
	ImageURL  string               `json:"image_url"`
	Rating    entity.RatingSummary `json:"rating"`
	CreatedAt time.Time            `json:"created_at"`
}

// RateResult is the outcome of "products rate".
type RateResult struct {
	ProductID string               `json:"product_id"`
	Identity  string               `json:"identity"`
	Accepted  bool                 `json:"accepted"`
	Stars     int                  `json:"stars"`
	Rating    entity.RatingSummary `json:"rating"`
}

// NewProductsCommand creates the products command group.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect and rate catalog products",
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List products, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsList(opts, cmd)
		},
	}

	rate := &cobra.Command{
		Use:   "rate PRODUCT_ID STARS",
		Short: "Rate a product as this machine's identity",
		Long: `Rate a product from 1 to 5 stars.

The rating is recorded under the identity stored in the identity file, so each machine
can rate a product once. Repeated ratings are reported and leave the product unchanged.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsRate(opts, cmd, args[0], args[1])
		},
	}

	qr := &cobra.Command{
		Use:           "qr PRODUCT_ID",
		Short:         "Write the share QR code of a product as PNG",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsQR(opts, cmd, args[0])
		},
	}
	qr.Flags().StringVarP(&opts.Output, "output", "o", "", "PNG file to write (required)")
	_ = qr.MarkFlagRequired("output")

	cmd.AddCommand(list, rate, qr)

	return cmd
}

func runProductsList(opts *ProductsOptions, cmd *cobra.Command) error {
	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	s, err := opts.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	catalog := impl.NewCatalogSync(s.store, s.logger)
	stop, err := startEngine(ctx, catalog)
	if err != nil {
		return err
	}
	defer stop()

	products := catalog.Products()
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, ProductSummary{
			ID:        products[i].ID,
			Name:      products[i].Name,
			Price:     products[i].Price,
			ImageURL:  products[i].ImageURL,
			Rating:    products[i].Summary(),
			CreatedAt: products[i].CreatedAt,
		})
	}

	return s.out.Success(summaries, func(w io.Writer) error {
		if len(summaries) == 0 {
			_, err := fmt.Fprintln(w, "No products")

			return err
		}

		rows := make([][]string, 0, len(summaries))
		for _, p := range summaries {
			rows = append(rows, []string{
				p.ID,
				p.Name,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				fmt.Sprintf("%.1f (%d)", p.Rating.Average, p.Rating.Count),
				util.FormatTimestamp(p.CreatedAt),
			})
		}

		return s.out.Table([]string{"ID", "NAME", "PRICE", "RATING", "CREATED"}, rows)
	})
}

func runProductsRate(opts *ProductsOptions, cmd *cobra.Command, productID, starsArg string) error {
	stars, err := strconv.Atoi(starsArg)
	if err != nil || !entity.ValidStars(stars) {
		return NewExitError(ExitFailure, fmt.Sprintf("invalid stars %q: must be a whole number from %d to %d", starsArg, entity.MinStars, entity.MaxStars))
	}

	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	s, err := opts.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	id, err := identity.NewFileProvider(s.cfg, s.logger).GetOrCreateIdentity(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load identity", err)
	}

	ratingUC, err := impl.NewRatingService(s.store, s.cfg.Rating.Strategy, s.logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create rating service", err)
	}

	catalog := impl.NewCatalogSync(s.store, s.logger)
	stop, err := startEngine(ctx, catalog)
	if err != nil {
		return err
	}
	defer stop()

	product, err := findProduct(catalog, productID)
	if err != nil {
		return err
	}

	result, err := ratingUC.Rate(ctx, product, id, stars)
	if err != nil {
		return usecaseError("failed to rate product", err)
	}

	rated := product.WithAggregate(result.Aggregate)
	out := RateResult{
		ProductID: product.ID,
		Identity:  id.String(),
		Accepted:  result.Accepted,
		Stars:     rated.UserRating(id),
		Rating:    rated.Summary(),
	}

	return s.out.Success(out, func(w io.Writer) error {
		if !out.Accepted {
			_, err := fmt.Fprintf(w, "Already rated %s with %d stars; rating unchanged at %.1f (%d)\n",
				product.Name, out.Stars, out.Rating.Average, out.Rating.Count)

			return err
		}

		_, err := fmt.Fprintf(w, "Rated %s %d stars; average now %.1f (%d)\n",
			product.Name, out.Stars, out.Rating.Average, out.Rating.Count)

		return err
	})
}

func runProductsQR(opts *ProductsOptions, cmd *cobra.Command, productID string) error {
	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	s, err := opts.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	catalog := impl.NewCatalogSync(s.store, s.logger)
	stop, err := startEngine(ctx, catalog)
	if err != nil {
		return err
	}
	defer stop()

	catalogUC := impl.NewCatalogService(s.store, nil, newQRCodeService(s.cfg.QRCode), catalog, service.SystemClock(), s.logger)

	png, err := catalogUC.ShareQR(ctx, productID)
	if err != nil {
		return usecaseError("failed to create QR code", err)
	}

	if err := os.WriteFile(opts.Output, png, 0o644); err != nil { //nolint:gosec // QR codes are public
		return WrapExitError(ExitCommandError, "failed to write QR code", err)
	}

	result := map[string]any{"product_id": productID, "path": opts.Output, "bytes": len(png)}

	return s.out.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Wrote %s\n", opts.Output)

		return err
	})
}

func findProduct(catalog usecase.CatalogSync, productID string) (entity.Product, error) {
	product, ok := catalog.Product(productID)
	if !ok {
		return entity.Product{}, usecaseError("failed to find product", domainerrors.ErrProductNotFound.WithDetails(productID))
	}

	return product, nil
}

func newQRCodeService(cfg *config.QRCodeConfig) service.QRCodeService {
	if cfg == nil {
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.Size, cfg.ErrorCorrectionLevel, cfg.BaseURL)
}
