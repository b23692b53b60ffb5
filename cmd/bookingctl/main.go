// bookingctl inspects and maintains the booking collections in the store
// configured by the service environment (STORE_DRIVER and friends).
//
//	bookingctl list [--status confirmed] [--query mumbai] [--sort date-desc]
//	bookingctl stats
//	bookingctl complete
//	bookingctl refund --amount "₹1,850" --hours 30
//	bookingctl clear --yes
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	intconfig "busyatra/internal/config"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
	"busyatra/internal/services"
	"busyatra/internal/store"
	"busyatra/internal/utils"

	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	env := intconfig.LoadEnv()
	ctx := context.Background()

	st, err := intconfig.OpenStore(ctx, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := run(ctx, st, env, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		st.Close()
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: bookingctl <list|stats|complete|refund|clear> [flags]")
}

func run(ctx context.Context, st store.Store, env intconfig.Env, cmd string, args []string, out io.Writer) error {
	bookings := services.BookingService{Bookings: repositories.NewBookingRepo(st), Location: env.Location}

	switch cmd {
	case "list":
		return runList(ctx, bookings, args, out)
	case "stats":
		return writeJSON(out, bookings.Stats(ctx))
	case "complete":
		n, err := bookings.CompleteDeparted(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "completed %d bookings\n", n)
		return nil
	case "refund":
		return runRefund(args, out)
	case "clear":
		return runClear(ctx, st, bookings, args, out)
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runList(ctx context.Context, bookings services.BookingService, args []string, out io.Writer) error {
	var filter models.BookingFilter
	var status string
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&status, "status", "", "confirmed, completed or cancelled")
	fs.StringVarP(&filter.Query, "query", "q", "", "match route, operator or reference")
	fs.StringVar(&filter.Sort, "sort", "date-desc", "date-desc, date-asc, amount-desc or amount-asc")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter.Status = models.BookingStatus(status)

	list, err := bookings.Query(ctx, filter)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REFERENCE\tROUTE\tDATE\tSEATS\tAMOUNT\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%d\t%s\t%s\n",
			b.BookingReference, b.Route.Label(), b.JourneyDate, b.DepartureTime,
			len(b.Seats), utils.FormatRupees(b.TotalAmount), b.Status)
	}
	return tw.Flush()
}

func runRefund(args []string, out io.Writer) error {
	var amountRaw string
	var hours float64
	fs := pflag.NewFlagSet("refund", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&amountRaw, "amount", "", "booking amount, e.g. 1850 or ₹1,850")
	fs.Float64Var(&hours, "hours", 0, "hours until departure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := utils.ParseRupees(amountRaw)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}
	refund, fee, pct := services.RefundFor(amount, hours)
	fmt.Fprintf(out, "refund %s (%d%%), fee %s\n", utils.FormatRupees(refund), pct, utils.FormatRupees(fee))
	return nil
}

func runClear(ctx context.Context, st store.Store, bookings services.BookingService, args []string, out io.Writer) error {
	var yes bool
	fs := pflag.NewFlagSet("clear", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVarP(&yes, "yes", "y", false, "confirm removal of every stored collection")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !yes {
		return errors.New("refusing to clear without --yes")
	}
	err := services.ClearAll(ctx, bookings.Bookings,
		repositories.NewSearchHistoryRepo(st),
		repositories.NewPreferencesRepo(st),
		repositories.NewPassengerDraftRepo(st))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "cleared", len(repositories.AllKeys), "collections")
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
