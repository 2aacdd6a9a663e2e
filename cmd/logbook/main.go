package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"logbook/internal/cli"
	"logbook/internal/config"
	"logbook/internal/core"
	"logbook/internal/ledger"
	"logbook/internal/services"
)

const usage = `Usage: logbook <command> [flags]

Commands:
  add        record a transaction
  rm         remove a transaction by id
  clear      remove all transactions
  list       show transactions with optional filters and a summary
  person     manage persons (add, rename, rm)
  persons    list registered persons

Run 'logbook <command> -h' for command flags.`

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	result := cli.OpenStore(ctx, logger.Logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Warn("Store cleanup failed", "error", err)
			}
		}
	}()

	book := services.New(result.Store)
	if err := book.Load(ctx); err != nil {
		logger.Error("Failed to load logbook", "error", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, book, os.Args[2:])
	case "rm":
		err = runRemove(ctx, book, os.Args[2:])
	case "clear":
		err = runClear(ctx, book, os.Args[2:])
	case "list":
		err = runList(book, os.Args[2:])
	case "person":
		err = runPerson(ctx, book, os.Args[2:])
	case "persons":
		err = runPersons(book)
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAdd(ctx context.Context, book *services.Logbook, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	desc := fs.String("d", "", "description (required)")
	amount := fs.String("a", "", "amount, strictly positive (required)")
	entryType := fs.String("t", "expense", "entry type: income or expense")
	person := fs.String("p", "", "person id (required)")
	date := fs.String("date", "", "calendar date YYYY-MM-DD (default: today)")
	fs.Parse(args)

	parsedAmount, err := core.ParseAmount(*amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", *amount, err)
	}

	in := ledger.Input{
		Description: *desc,
		Amount:      parsedAmount,
		Type:        core.EntryType(*entryType),
		Person:      *person,
	}
	if *date != "" {
		in.Date, err = core.ParseDate(*date)
		if err != nil {
			return fmt.Errorf("date %q: %w", *date, err)
		}
	}

	tx, err := book.AddTransaction(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s: %s %s on %s (id %s)\n",
		tx.Type, tx.Description, tx.Amount.StringFixed(2), tx.Date, tx.ID)
	return nil
}

func runRemove(ctx context.Context, book *services.Logbook, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: logbook rm <transaction-id>")
	}
	if err := book.RemoveTransaction(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("removed", args[0])
	return nil
}

func runClear(ctx context.Context, book *services.Logbook, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation")
	fs.Parse(args)

	if !*yes && !confirm("Are you sure you want to delete all transactions?") {
		fmt.Println("aborted")
		return nil
	}
	book.ClearTransactions(ctx)
	fmt.Println("all transactions removed")
	return nil
}

func runList(book *services.Logbook, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	typeArg := fs.String("type", "all", "filter by type: all, income or expense")
	search := fs.String("search", "", "filter by person name, case-insensitive substring")
	dateArg := fs.String("date", "", "filter by calendar date YYYY-MM-DD")
	fs.Parse(args)

	filter := core.Filter{Term: *search}
	var err error
	filter.Type, err = core.ParseTypeFilter(*typeArg)
	if err != nil {
		return err
	}
	if *dateArg != "" {
		filter.Date, err = core.ParseDate(*dateArg)
		if err != nil {
			return fmt.Errorf("date %q: %w", *dateArg, err)
		}
	}

	projection := book.Query(filter)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tPERSON\tDESCRIPTION\tID")
	for _, tx := range projection.View {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Type, tx.Amount.StringFixed(2), book.LookupName(tx.Person), tx.Description, tx.ID)
	}
	w.Flush()

	if filter.Active() {
		fmt.Printf("\nshowing %d of %d transactions\n", len(projection.View), len(book.Transactions()))
	}
	fmt.Printf("income %s  expense %s  balance %s\n",
		projection.Totals.Income.StringFixed(2),
		projection.Totals.Expense.StringFixed(2),
		projection.Totals.Balance.StringFixed(2))
	return nil
}

func runPerson(ctx context.Context, book *services.Logbook, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: logbook person <add|rename|rm> ...")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: logbook person add <name>")
		}
		p, err := book.AddPerson(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("added %s (id %s)\n", p.Name, p.ID)
		return nil

	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: logbook person rename <id> <new name>")
		}
		if err := book.RenamePerson(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Println("renamed", args[1])
		return nil

	case "rm":
		fs := flag.NewFlagSet("person rm", flag.ExitOnError)
		yes := fs.Bool("y", false, "skip confirmation")
		fs.Parse(args[1:])
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: logbook person rm [-y] <id>")
		}
		id := fs.Arg(0)

		if !*yes && !confirm("Deleting a person also deletes their transactions. Continue?") {
			fmt.Println("aborted")
			return nil
		}
		removal, err := book.RemovePerson(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("removed %s; %d transactions also removed\n",
			removal.Person.Name, len(removal.CascadedTransactionIDs))
		return nil

	default:
		return fmt.Errorf("unknown person command %q", args[0])
	}
}

func runPersons(book *services.Logbook) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, p := range book.Persons() {
		fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
	}
	return w.Flush()
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
