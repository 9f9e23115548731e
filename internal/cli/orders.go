package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/pubsub"
	"storefront/internal/usecase/impl"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// Order partitions accepted by "orders list".
const (
	partitionPending  = "pending"
	partitionResolved = "resolved"
	partitionAll      = "all"
)

// OrdersOptions holds flags for the orders commands.
type OrdersOptions struct {
	*RootOptions
	Partition string
}

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List and resolve customer orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Long: `List orders from the live order collection, newest first.

Examples:
  storectl orders list
  storectl orders list --partition resolved
  storectl orders list --partition all --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersList(opts, cmd)
		},
	}
	list.Flags().StringVarP(&opts.Partition, "partition", "p", partitionPending, "which orders to list (pending|resolved|all)")

	complete := &cobra.Command{
		Use:           "complete ORDER_ID",
		Short:         "Mark an order completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderMutation(opts, cmd, args[0], false)
		},
	}

	del := &cobra.Command{
		Use:           "delete ORDER_ID",
		Short:         "Delete an order record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderMutation(opts, cmd, args[0], true)
		},
	}

	cmd.AddCommand(list, complete, del)

	return cmd
}

func runOrdersList(opts *OrdersOptions, cmd *cobra.Command) error {
	switch opts.Partition {
	case partitionPending, partitionResolved, partitionAll:
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid partition %q: must be pending, resolved or all", opts.Partition))
	}

	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	s, err := opts.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	orders := impl.NewOrderSync(s.store, s.logger)
	stop, err := startEngine(ctx, orders)
	if err != nil {
		return err
	}
	defer stop()

	var list []entity.Order
	switch opts.Partition {
	case partitionPending:
		list = orders.Pending()
	case partitionResolved:
		list = orders.Resolved()
	default:
		list = orders.Orders()
	}

	return s.out.Success(list, func(w io.Writer) error {
		if len(list) == 0 {
			_, err := fmt.Fprintf(w, "No %s orders\n", opts.Partition)

			return err
		}

		rows := make([][]string, 0, len(list))
		for _, order := range list {
			rows = append(rows, []string{
				order.ID,
				order.Status.String(),
				order.ProductName,
				strconv.Itoa(order.Quantity),
				strconv.FormatFloat(order.TotalPrice, 'f', 2, 64),
				order.CustomerName,
				order.Phone,
				util.FormatTimestamp(order.CreatedAt),
			})
		}

		return s.out.Table([]string{"ID", "STATUS", "PRODUCT", "QTY", "TOTAL", "CUSTOMER", "PHONE", "CREATED"}, rows)
	})
}

// runOrderMutation completes or deletes one order and publishes the matching event.
func runOrderMutation(opts *OrdersOptions, cmd *cobra.Command, orderID string, remove bool) error {
	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	s, err := opts.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	publisher, err := pubsub.Open(ctx, s.cfg.PubSub, s.logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create event publisher", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			s.logger.Warn("Failed to close event publisher", slog.Any("error", err))
		}
	}()

	orderUC := impl.NewOrderService(s.store, publisher, nil, service.SystemClock(), s.logger)

	action := "completed"
	if remove {
		action = "deleted"
		err = orderUC.Delete(ctx, orderID)
	} else {
		err = orderUC.Complete(ctx, orderID)
	}
	if err != nil {
		return usecaseError("failed to update order", err)
	}

	result := map[string]string{"id": orderID, "result": action}

	return s.out.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Order %s %s\n", orderID, action)

		return err
	})
}
