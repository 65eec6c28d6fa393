package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/domain/model"
	"github.com/fitpick/admin-gateway/internal/listview"
)

const defaultFollowInterval = 5 * time.Second

type listOptions struct {
	Search   string
	Page     int
	PageSize int
	Follow   bool
	Interval time.Duration
}

func parseListFlags(name string, args []string) (listOptions, error) {
	opts := listOptions{Page: 1, PageSize: listview.DefaultPageSize, Interval: defaultFollowInterval}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.Search, "search", "", "free-text search")
	fs.IntVar(&opts.Page, "page", 1, "1-based page number")
	fs.IntVar(&opts.PageSize, "page-size", listview.DefaultPageSize, "items per page")
	fs.BoolVar(&opts.Follow, "follow", false, "keep refreshing until interrupted")
	fs.DurationVar(&opts.Interval, "interval", defaultFollowInterval, "refresh interval in follow mode")
	if err := fs.Parse(args); err != nil {
		return listOptions{}, err
	}
	return opts, nil
}

// listRow is the common shape every resource listing is rendered from.
type listRow struct {
	ID      string
	Label   string
	Detail  string
	Created time.Time
}

func listCommand(resource string) commandFn {
	return func(cmdCtx *commandContext, args []string) error {
		opts, err := parseListFlags(resource, args)
		if err != nil {
			return err
		}

		infra, err := connectInfra(cmdCtx)
		if err != nil {
			return err
		}
		defer closeInfra(cmdCtx, infra)

		sess, err := currentSession(cmdCtx, infra)
		if err != nil {
			return err
		}

		fetch, err := rowFetcher(resource, infra.Backend.WithToken(sess.AccessToken))
		if err != nil {
			return err
		}

		if opts.Follow {
			return followListing(cmdCtx, fetch, opts)
		}

		snap, err := fetch(cmdCtx.Ctx, listview.Query{
			Search:   opts.Search,
			Page:     opts.Page,
			PageSize: opts.PageSize,
		})
		if err != nil {
			return err
		}
		return printSnapshot(os.Stdout, snap)
	}
}

// followListing drives a listview controller on an interval: the terminal
// equivalent of a live console page. Every tick re-fetches the current
// query; a fetch error keeps the last good page on screen.
func followListing(cmdCtx *commandContext, fetch listview.Fetcher[listRow], opts listOptions) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	updates := make(chan listview.Snapshot[listRow], 1)
	ctrl := listview.NewController(listview.ControllerOptions[listRow]{
		Fetch:    fetch,
		PageSize: opts.PageSize,
		OnChange: func(state listview.State, snap listview.Snapshot[listRow], err error) {
			if err != nil {
				cmdCtx.Logger.Warn("refresh failed, keeping last page", "error", err)
				return
			}
			if state != listview.StateIdle {
				return
			}
			select {
			case updates <- snap:
			default:
			}
		},
	})
	defer ctrl.Close()

	if opts.Search != "" {
		ctrl.SetSearch(ctx, opts.Search)
	} else {
		ctrl.Refresh(ctx)
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	// The page flag is applied after the first snapshot so clamping can
	// see the real page count.
	pageApplied := opts.Page <= 1

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-updates:
			if err := printSnapshot(os.Stdout, snap); err != nil {
				return err
			}
			if !pageApplied {
				pageApplied = true
				ctrl.SetPage(ctx, opts.Page)
			}
		case <-ticker.C:
			ctrl.Refresh(ctx)
		}
	}
}

// rowFetcher adapts one resource's backend listing into the shared row
// shape.
func rowFetcher(resource string, client *backend.Client) (listview.Fetcher[listRow], error) {
	switch resource {
	case "users":
		return func(ctx context.Context, q listview.Query) (listview.Snapshot[listRow], error) {
			page, err := client.Users().List(ctx, model.UserListOptions{ListOptions: commonOptions(q)})
			if err != nil {
				return listview.Snapshot[listRow]{}, err
			}
			return rowSnapshot(page, func(u model.User) listRow {
				return listRow{ID: u.ID, Label: u.Name, Detail: u.Email, Created: u.CreatedAt}
			}), nil
		}, nil
	case "meals":
		return func(ctx context.Context, q listview.Query) (listview.Snapshot[listRow], error) {
			page, err := client.Meals().List(ctx, model.MealListOptions{ListOptions: commonOptions(q)})
			if err != nil {
				return listview.Snapshot[listRow]{}, err
			}
			return rowSnapshot(page, func(m model.Meal) listRow {
				return listRow{ID: m.ID, Label: m.Name, Detail: string(m.Status), Created: m.CreatedAt}
			}), nil
		}, nil
	case "blogs":
		return func(ctx context.Context, q listview.Query) (listview.Snapshot[listRow], error) {
			page, err := client.Blogs().List(ctx, model.BlogListOptions{ListOptions: commonOptions(q)})
			if err != nil {
				return listview.Snapshot[listRow]{}, err
			}
			return rowSnapshot(page, func(b model.Blog) listRow {
				detail := "draft"
				if b.Published {
					detail = "published"
				}
				return listRow{ID: b.ID, Label: b.Title, Detail: detail, Created: b.CreatedAt}
			}), nil
		}, nil
	case "transactions":
		return func(ctx context.Context, q listview.Query) (listview.Snapshot[listRow], error) {
			page, err := client.Transactions().List(ctx, model.TransactionListOptions{ListOptions: commonOptions(q)})
			if err != nil {
				return listview.Snapshot[listRow]{}, err
			}
			return rowSnapshot(page, func(t model.Transaction) listRow {
				detail := fmt.Sprintf("%.2f %s %s", t.Amount, t.Currency, t.Status)
				return listRow{ID: t.ID, Label: t.UserName, Detail: detail, Created: t.CreatedAt}
			}), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
}

func commonOptions(q listview.Query) model.ListOptions {
	return model.ListOptions{Search: q.Search, Page: q.Page, PageSize: q.PageSize}
}

func rowSnapshot[T any](page model.Page[T], toRow func(T) listRow) listview.Snapshot[listRow] {
	rows := make([]listRow, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, toRow(item))
	}
	return listview.Snapshot[listRow]{
		Items:      rows,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func printSnapshot(w io.Writer, snap listview.Snapshot[listRow]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tDETAIL\tCREATED"); err != nil {
		return err
	}
	for _, row := range snap.Items {
		created := ""
		if !row.Created.IsZero() {
			created = row.Created.Format(time.RFC3339)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.ID, row.Label, row.Detail, created); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "page %d of %d (%d items)\n", snap.Page, snap.TotalPages, snap.TotalItems)
}
