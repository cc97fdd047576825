package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/andrewpaige1/wordcards/auth"
	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/utils"
	"github.com/andrewpaige1/wordcards/view"
)

func newListCommand(a *app) *cobra.Command {
	var q view.Query

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List flashcards, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards := view.Render(a.store.ListAll(cmd.Context()), q)
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No flashcards match.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cardTable(cards))
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Only cards whose word or translation contains this text")
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "Only cards in this category")
	return cmd
}

func cardTable(cards []models.Flashcard) string {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{c.ID, c.Word, c.Transcription, c.Translation, c.Category})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "WORD", "TRANSCRIPTION", "TRANSLATION", "CATEGORY").
		Rows(rows...).
		String()
}

func newAddCommand(a *app) *cobra.Command {
	var data models.FlashcardFormData

	cmd := &cobra.Command{
		Use:   "add <word> <translation>",
		Short: "Create a flashcard",
		Example: `  wordcards add cat кот
  wordcards add apple яблоко --category Food --transcription /ˈæp.əl/`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data.Word, data.Translation = args[0], args[1]
			if err := utils.ValidateStruct(data); err != nil {
				return err
			}

			card, err := a.store.Create(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", card.Word, card.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&data.Transcription, "transcription", "t", "", "Pronunciation")
	cmd.Flags().StringVarP(&data.Category, "category", "c", "", "Category label")
	cmd.Flags().StringVar(&data.ImageURL, "image", "", "Image URL")
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a flashcard",
		Long: `Change fields of a flashcard. Only the flags you pass are changed;
pass an empty value (--category "") to clear an optional field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := patchFromFlags(cmd)
			if patch.Empty() {
				return fmt.Errorf("nothing to change: pass at least one field flag")
			}
			if err := utils.ValidateStruct(patch); err != nil {
				return err
			}

			card, ok, err := a.store.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("flashcard %s: %w", args[0], models.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", card.Word, card.ID)
			return nil
		},
	}

	cmd.Flags().StringP("word", "w", "", "Word")
	cmd.Flags().StringP("translation", "r", "", "Translation")
	cmd.Flags().StringP("transcription", "t", "", "Pronunciation")
	cmd.Flags().StringP("category", "c", "", "Category label")
	cmd.Flags().String("image", "", "Image URL")
	return cmd
}

// patchFromFlags sets a patch field for every flag the user passed.
func patchFromFlags(cmd *cobra.Command) models.FlashcardPatch {
	var patch models.FlashcardPatch
	fields := map[string]**string{
		"word":          &patch.Word,
		"translation":   &patch.Translation,
		"transcription": &patch.Transcription,
		"category":      &patch.Category,
		"image":         &patch.ImageURL,
	}
	for name, field := range fields {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		*field = &value
	}
	return patch
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a flashcard",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			card, ok := a.store.Get(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("flashcard %s: %w", id, models.ErrNotFound)
			}

			if !yes {
				prompt := fmt.Sprintf("Delete flashcard %q (%s)?", card.Word, card.Translation)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			deleted, err := a.store.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("flashcard %s: %w", id, models.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", card.Word)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range view.DistinctCategories(a.store.ListAll(cmd.Context())) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newDoctorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the stored collection is readable",
		Long: `Reads the raw stored collection. Listing commands treat an unreadable
collection as empty and the next change overwrites it, so run this first
if cards seem to have disappeared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.store.Inspect(cmd.Context())
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "key:     %s\n", st.Key)
			fmt.Fprintf(out, "present: %t\n", st.Present)
			fmt.Fprintf(out, "bytes:   %d\n", st.Bytes)
			fmt.Fprintf(out, "cards:   %d\n", st.Cards)
			if st.Corrupt {
				return fmt.Errorf("stored collection is unreadable: %s", st.Error)
			}
			return nil
		},
	}
}

func newTokenCommand(a *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.AuthEnabled() {
				return fmt.Errorf("WORDCARDS_JWT_SECRET is not set; the API accepts requests without a token")
			}
			token, err := auth.CreateToken(a.tokenConfig(), subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "local", "Token subject")
	return cmd
}
