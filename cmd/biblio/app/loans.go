package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	library "github.com/mattiajb/library-management-system-sub000"
	"github.com/mattiajb/library-management-system-sub000/internal/cmd/output"
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
)

const dueDateLayout = "2006-01-02"

// NewLoansCommand creates the loans command with its subcommands.
func (a *App) NewLoansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Manage loans between users and books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.newLoansListCommand())
	cmd.AddCommand(a.newLoansRegisterCommand())
	cmd.AddCommand(a.newLoansReturnCommand())
	cmd.AddCommand(a.newLoansOverdueCommand())

	return cmd
}

func (a *App) newLoansListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans sorted by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			var loans []*archive.Loan
			if all {
				loans, err = lib.Loans().LoansSortedByDueDate()
			} else {
				loans, err = lib.Loans().ActiveLoans()
			}
			if err != nil {
				return err
			}

			return a.print(cmd, loanTable(lib, loans))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include returned loans")

	return cmd
}

func (a *App) newLoansRegisterCommand() *cobra.Command {
	var (
		userCode string
		isbn     string
		due      string
		days     int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			dueDate, err := a.resolveDueDate(due, days)
			if err != nil {
				return err
			}

			loan, err := lib.Loans().RegisterLoan(
				&archive.User{Code: userCode},
				&archive.Book{ISBN: isbn},
				dueDate,
			)
			if err != nil {
				return err
			}

			cmd.Printf("Loan %d registered, due %s\n", loan.ID, loan.DueDate.Format(dueDateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&userCode, "user", "", "user code (required)")
	cmd.Flags().StringVar(&isbn, "isbn", "", "book ISBN (required)")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().IntVar(&days, "days", 0, "loan length in days (default from config)")

	return cmd
}

func (a *App) newLoansReturnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Return a loaned book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid loan id %q", args[0])
			}

			lib, err := a.Library()
			if err != nil {
				return err
			}

			if err := lib.Loans().ReturnLoan(&archive.Loan{ID: id}); err != nil {
				return err
			}

			cmd.Printf("Loan %d returned\n", id)
			return nil
		},
	}
}

func (a *App) newLoansOverdueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			loans, err := lib.Loans().OverdueLoans()
			if err != nil {
				return err
			}

			return a.print(cmd, loanTable(lib, loans))
		},
	}
}

// resolveDueDate turns the --due/--days flags into a due date. An explicit
// date wins; otherwise the loan runs the configured number of days from now.
func (a *App) resolveDueDate(due string, days int) (utc.Time, error) {
	if due != "" {
		parsed, err := time.Parse(dueDateLayout, due)
		if err != nil {
			return utc.Time{}, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", due)
		}
		return utc.New(parsed), nil
	}

	if days <= 0 {
		days = a.config.LoanDays
	}
	return utc.New(time.Now().AddDate(0, 0, days)), nil
}

func loanTable(lib library.Client, loans []*archive.Loan) output.Data {
	data := output.Data{
		Headers: []string{"ID", "User", "ISBN", "Loaned", "Due", "Returned", "Late"},
	}
	for _, loan := range loans {
		returned := "-"
		if loan.ReturnDate != nil {
			returned = loan.ReturnDate.Format(dueDateLayout)
		}
		late := ""
		if lib.Loans().Late(loan) {
			late = "yes"
		}
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(loan.ID, 10),
			loan.UserCode,
			loan.BookISBN,
			loan.LoanDate.Format(dueDateLayout),
			loan.DueDate.Format(dueDateLayout),
			returned,
			late,
		})
	}
	return data
}
