package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/matrixview/internal/calculator"
	"github.com/mmynk/matrixview/internal/draft"
	"github.com/mmynk/matrixview/internal/models"
)

func newNewCommand(app *App) *cobra.Command {
	var (
		title string
		table tableFlags
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Save a new note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := table.calculation(cmd)
			if err != nil {
				return err
			}

			d := draft.FromRows(app.Now(), table.tableRows())
			d.Title = title
			d.Calculation = calc
			d.People = table.people

			note, err := d.Build()
			if err != nil {
				return err
			}
			if err := app.Repo.Add(cmd.Context(), note); err != nil {
				return fmt.Errorf("failed to save note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n%s\n", note.ID, app.Formatter.Summary(note))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	table.register(cmd)
	return cmd
}

func newCalcCommand(app *App) *cobra.Command {
	var table tableFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a table without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := table.calculation(cmd)
			if err != nil {
				return err
			}

			d := draft.FromRows(app.Now(), table.tableRows())
			d.Calculation = calc
			d.People = table.people

			out := cmd.OutOrStdout()
			total := d.Total()
			if calc.Type == models.CalculationCount {
				fmt.Fprintf(out, "%s: %d\n", calc.Type.Label(), int(total))
			} else {
				fmt.Fprintf(out, "%s: %s\n", calc.Type.Label(), app.Formatter.Money(total))
			}

			if calc.Type == models.CalculationPercentage {
				for _, part := range calculator.PercentageBreakdown(d.Rows()) {
					fmt.Fprintf(out, "  %s: %s%%\n", part.Item, calculator.FormatCurrency(part.Percent))
				}
			}
			if split := d.Split(); split != nil {
				fmt.Fprintf(out, "Per person: %s (%d people)\n", app.Formatter.Money(split.PerPerson), split.People)
			}
			return nil
		},
	}

	table.register(cmd)
	return cmd
}

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := app.Repo.LoadAll(cmd.Context())
			models.SortNewestFirst(notes)

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes yet")
				return nil
			}
			for _, note := range notes {
				fmt.Fprintf(out, "%s\n%s\n\n", note.ID, app.Formatter.Summary(note))
			}
			return nil
		},
	}
}

func newShareCommand(app *App) *cobra.Command {
	var totalOnly, copyText bool

	cmd := &cobra.Command{
		Use:   "share ID",
		Short: "Print a note as shareable text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := app.Repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			text := app.Formatter.Note(note)
			if totalOnly {
				text = app.Formatter.TotalOnly(note)
			}

			if copyText {
				if err := app.Copy(text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&totalOnly, "total-only", false, "share only the total and split")
	cmd.Flags().BoolVar(&copyText, "copy", false, "copy to the clipboard instead of printing")
	return cmd
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Repo.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newTokenCommand(app *App) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return errors.New("AUTH_SECRET is not set")
			}

			token, err := app.Tokens.Generate(device)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "device name")
	_ = cmd.MarkFlagRequired("device")
	return cmd
}
