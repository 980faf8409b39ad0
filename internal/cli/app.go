package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/report"
	"expensetracker/internal/services"
	"expensetracker/internal/store"
)

// Remote is everything the commands need from the expenses service.
type Remote interface {
	store.Lister
	services.Remote
}

// App carries the dependencies shared by every command.
type App struct {
	Remote   Remote
	Reporter report.Reporter
	Logger   *applog.Logger
	Out      io.Writer
	// Currency is an ISO 4217 code used to format totals. Empty prints
	// plain decimals.
	Currency string
}

// session is one store plus the service bound to it, built per command.
type session struct {
	store    *store.Store
	service  *services.ExpenseService
	fetchErr error
}

// open builds the store, which starts the initial fetch, and waits for it.
func (a *App) open(ctx context.Context) (*session, error) {
	var (
		mu       sync.Mutex
		fetchErr error
	)
	captureFetch := report.Func(func(_ context.Context, err error, label string) {
		if label == store.FetchLabel {
			mu.Lock()
			fetchErr = err
			mu.Unlock()
		}
	})
	reporter := report.Multi(a.Reporter, captureFetch)

	st := store.New(ctx, a.Remote, reporter, store.WithLogger(a.Logger))
	select {
	case <-st.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	mu.Lock()
	defer mu.Unlock()
	return &session{
		store:    st,
		service:  services.NewExpenseService(a.Remote, st, reporter, a.Logger),
		fetchErr: fetchErr,
	}, nil
}

func (a *App) fail(format string, args ...any) subcommands.ExitStatus {
	a.Logger.Error(fmt.Sprintf(format, args...))
	return subcommands.ExitFailure
}

// formatAmount renders d with the configured currency, or as a plain
// two-decimal number.
func (a *App) formatAmount(d decimal.Decimal) string {
	if a.Currency == "" {
		return d.StringFixed(core.AmountPlaces)
	}
	cur := money.GetCurrency(a.Currency)
	if cur == nil {
		return d.StringFixed(core.AmountPlaces) + " " + a.Currency
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Register adds every command to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&listCmd{app: app}, "expenses")
	c.Register(&totalsCmd{app: app}, "expenses")
	c.Register(&addCmd{app: app}, "expenses")
	c.Register(&editCmd{app: app}, "expenses")
	c.Register(&deleteCmd{app: app}, "expenses")
}
