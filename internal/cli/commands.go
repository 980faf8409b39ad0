package cli

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/google/subcommands"

	"expensetracker/internal/core"
)

// DisplayDateLayout is how record dates are printed.
const DisplayDateLayout = "Mon Jan 02 2006"

type listCmd struct {
	app *App
	typ string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list records, optionally of one type" }
func (*listCmd) Usage() string {
	return `expenses list [-type Income|Expense]

  Prints the records in server order. Without -type the Income, Expense
  and overall totals follow the list.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only show records of this type (Income or Expense).")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := core.Type(c.typ)
	if !filter.Valid() {
		return c.app.fail("invalid type %q: must be Income or Expense", c.typ)
	}
	s, err := c.app.open(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if s.fetchErr != nil {
		return c.app.fail("could not load expenses: %v", s.fetchErr)
	}

	records := s.store.GetState().Expenses
	if core.HasNoData(records, filter) {
		fmt.Fprintln(c.app.Out, "No data available")
		return subcommands.ExitSuccess
	}

	tw := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAMOUNT\tTYPE\tDATE")
	for _, e := range core.FilterExpenses(records, filter) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, c.app.formatAmount(core.ParseAmount(e.Amount)), e.SelectedType, displayDate(e))
	}
	tw.Flush()

	if filter == "" {
		fmt.Fprintln(c.app.Out)
		c.app.printSummary(core.Summarize(records))
	}
	return subcommands.ExitSuccess
}

func displayDate(e core.Expense) string {
	if t, ok := e.Date(); ok {
		return t.Format(DisplayDateLayout)
	}
	return e.SelectedDate
}

type totalsCmd struct {
	app *App
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "print the Income, Expense and overall totals" }
func (*totalsCmd) Usage() string {
	return `expenses totals
`
}
func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (c *totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.app.open(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if s.fetchErr != nil {
		return c.app.fail("could not load expenses: %v", s.fetchErr)
	}
	c.app.printSummary(core.Summarize(s.store.GetState().Expenses))
	return subcommands.ExitSuccess
}

func (a *App) printSummary(sum core.Summary) {
	tw := tabwriter.NewWriter(a.Out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Income:\t%s\n", a.formatAmount(sum.Income))
	fmt.Fprintf(tw, "Expense:\t%s\n", a.formatAmount(sum.Expense))
	fmt.Fprintf(tw, "Total:\t%s\n", a.formatAmount(sum.Total))
	tw.Flush()
}

type addCmd struct {
	app    *App
	title  string
	amount string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create a record" }
func (*addCmd) Usage() string {
	return `expenses add -title <title> -amount <amount>

  The server assigns the id and may fill in type and date.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Title of the record.")
	f.StringVar(&c.amount, "amount", "", "Amount, e.g. -3.50.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.app.open(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	created, err := s.service.Create(ctx, core.NewExpense{Title: c.title, Amount: c.amount})
	if err != nil {
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Out, "Created %s (%s)\n", created.ID, created.Title)
	return subcommands.ExitSuccess
}

type editCmd struct {
	app    *App
	id     string
	title  string
	amount string
	typ    string
	date   string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "update a record" }
func (*editCmd) Usage() string {
	return `expenses edit -id <id> [-title <title>] [-amount <amount>] [-type Income|Expense] [-date YYYY-MM-DD]

  Flags that are not given keep the record's current value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the record to edit.")
	f.StringVar(&c.title, "title", "", "New title.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.typ, "type", "", "New type (Income or Expense).")
	f.StringVar(&c.date, "date", "", "New date (YYYY-MM-DD).")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := c.app.open(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if s.fetchErr != nil {
		return c.app.fail("could not load expenses: %v", s.fetchErr)
	}

	records := s.store.GetState().Expenses
	i := slices.IndexFunc(records, func(e core.Expense) bool { return e.ID == c.id })
	if i < 0 {
		return c.app.fail("expense %q not found", c.id)
	}
	selected := records[i]

	edit := selected.Edit()
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			edit.Title = c.title
		case "amount":
			edit.Amount = c.amount
		case "type":
			edit.SelectedType = core.Type(c.typ)
		case "date":
			edit.SelectedDate = c.date
		}
	})

	updated, err := s.service.Update(ctx, selected, edit)
	if err != nil {
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Out, "Updated %s (%s)\n", updated.ID, updated.Title)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	app *App
	id  string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a record" }
func (*deleteCmd) Usage() string {
	return `expenses delete -id <id>
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the record to delete.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := c.app.open(ctx)
	if err != nil {
		return c.app.fail("%v", err)
	}
	if err := s.service.Delete(ctx, c.id); err != nil {
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Out, "Deleted %s\n", c.id)
	return subcommands.ExitSuccess
}
