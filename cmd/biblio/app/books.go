package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattiajb/library-management-system-sub000/internal/cmd/output"
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
)

// NewBooksCommand creates the books command with its subcommands.
func (a *App) NewBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.newBooksListCommand())
	cmd.AddCommand(a.newBooksAddCommand())
	cmd.AddCommand(a.newBooksRemoveCommand())
	cmd.AddCommand(a.newBooksSearchCommand())

	return cmd
}

func (a *App) newBooksListCommand() *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all books in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			var books []*archive.Book
			switch sortBy {
			case "title":
				books, err = lib.Books().BooksSortedByTitle()
			case "author":
				books, err = lib.Books().BooksSortedByAuthor()
			case "year":
				books, err = lib.Books().BooksSortedByYear()
			default:
				return fmt.Errorf("invalid sort key %q (valid: title, author, year)", sortBy)
			}
			if err != nil {
				return err
			}

			return a.print(cmd, bookTable(books))
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "title", "sort key: title, author, year")

	return cmd
}

func (a *App) newBooksAddCommand() *cobra.Command {
	var (
		title   string
		authors []string
		year    int
		isbn    string
		copies  int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			book := archive.NewBook(title, authors, year, isbn, copies)
			if err := lib.Books().AddBook(book); err != nil {
				return err
			}

			cmd.Printf("Added %q (%s)\n", book.Title, book.ISBN)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title (required)")
	cmd.Flags().StringArrayVar(&authors, "author", nil, "book author, repeatable (required)")
	cmd.Flags().IntVar(&year, "year", 0, "release year (required)")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN-10 or ISBN-13 (required)")
	cmd.Flags().IntVar(&copies, "copies", 1, "number of copies owned")

	return cmd
}

func (a *App) newBooksRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <isbn>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			if err := lib.Books().RemoveBook(&archive.Book{ISBN: args[0]}); err != nil {
				return err
			}

			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}

func (a *App) newBooksSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title, author or ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.Library()
			if err != nil {
				return err
			}

			books, err := lib.Books().SearchBooks(args[0])
			if err != nil {
				return err
			}

			return a.print(cmd, bookTable(books))
		},
	}
}

func bookTable(books []*archive.Book) output.Data {
	data := output.Data{
		Headers: []string{"ISBN", "Title", "Authors", "Year", "Available"},
	}
	for _, book := range books {
		data.Rows = append(data.Rows, []string{
			book.ISBN,
			book.Title,
			strings.Join(book.Authors, ", "),
			strconv.Itoa(book.ReleaseYear),
			fmt.Sprintf("%d/%d", book.AvailableCopies, book.TotalCopies),
		})
	}
	return data
}
