package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/view"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatCSV  = "csv"
)

var exportFormats = []string{formatYAML, formatJSON, formatCSV}

// exportCard is the export shape of a card. The timestamp stays in epoch
// milliseconds so an export can be compared with the stored collection.
type exportCard struct {
	ID            string `json:"id" yaml:"id"`
	Word          string `json:"word" yaml:"word"`
	Transcription string `json:"transcription,omitempty" yaml:"transcription,omitempty"`
	Translation   string `json:"translation" yaml:"translation"`
	Category      string `json:"category,omitempty" yaml:"category,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	CreatedAt     int64  `json:"createdAt" yaml:"createdAt"`
}

func newExportCommand(a *app) *cobra.Command {
	var (
		format string
		file   string
		id     string
		q      view.Query
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export flashcards as YAML, JSON or CSV",
		Long: `Export flashcards to stdout or a file.

With --id a single card is exported to a file named after its word,
e.g. "apple.yaml", unless --file names another path.`,
		Example: `  wordcards export > cards.yaml
  wordcards export -o csv --category Food --file food.csv
  wordcards export --id V1StGXR8_Z5jdHi6B-myT -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(exportFormats, format) {
				return fmt.Errorf("unsupported format %q (use yaml, json or csv)", format)
			}

			var cards []models.Flashcard
			if id != "" {
				card, ok := a.store.Get(cmd.Context(), id)
				if !ok {
					return fmt.Errorf("flashcard %s: %w", id, models.ErrNotFound)
				}
				cards = []models.Flashcard{card}
				if file == "" {
					file = cardFileName(card, format)
				}
			} else {
				cards = view.Render(a.store.ListAll(cmd.Context()), q)
			}

			if file == "" {
				return writeCards(cmd.OutOrStdout(), cards, format, id != "")
			}

			if err := writeFile(file, cards, format, id != ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d flashcard(s) to %s\n", len(cards), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format: yaml, json or csv")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&id, "id", "", "Export a single flashcard")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Only cards whose word or translation contains this text")
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "Only cards in this category")
	return cmd
}

func writeFile(path string, cards []models.Flashcard, format string, single bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeCards(f, cards, format, single); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeCards encodes cards in format. single writes one object instead of a
// list for yaml and json.
func writeCards(w io.Writer, cards []models.Flashcard, format string, single bool) error {
	rows := make([]exportCard, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, exportCard(c))
	}

	var payload interface{} = rows
	if single && len(rows) == 1 {
		payload = rows[0]
	}

	switch strings.ToLower(format) {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "word", "transcription", "translation", "category", "imageUrl", "createdAt"})
		for _, r := range rows {
			_ = cw.Write([]string{r.ID, r.Word, r.Transcription, r.Translation, r.Category, r.ImageURL, strconv.FormatInt(r.CreatedAt, 10)})
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported format %q (use yaml, json or csv)", format)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// cardFileName names a single-card export after the card's word.
func cardFileName(card models.Flashcard, format string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(card.Word), "-"), "-")
	if name == "" {
		name = card.ID
	}
	return filepath.Clean(name + "." + strings.ToLower(format))
}
