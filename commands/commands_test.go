package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/andrewpaige1/wordcards/config"
	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/storage"
	"github.com/andrewpaige1/wordcards/store"
)

type testApp struct {
	*app
	medium storage.Medium
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	medium := storage.NewMemoryMedium()
	cfg := &config.Config{
		DBDriver:    config.DriverMemory,
		StorageKey:  store.DefaultKey,
		JWTIssuer:   "wordcards",
		JWTAudience: "wordcards-api",
		TokenTTL:    time.Hour,
	}
	return testApp{
		app: &app{
			cfg:   cfg,
			log:   zerolog.Nop(),
			store: store.New(medium, zerolog.Nop()),
		},
		medium: medium,
	}
}

// run executes one command line against a and returns what it printed.
func (a testApp) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRoot(a.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func (a testApp) seed(t *testing.T, forms ...models.FlashcardFormData) []models.Flashcard {
	t.Helper()

	cards := make([]models.Flashcard, 0, len(forms))
	for _, f := range forms {
		card, err := a.store.Create(context.Background(), f)
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

func TestAddAndList(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	out, err := a.run(t, "", "add", "apple", "яблоко", "--category", "Food", "-t", "/ˈæp.əl/")
	require.NoError(t, err)
	assert.Contains(t, out, "Created apple")

	cards := a.store.ListAll(context.Background())
	require.Len(t, cards, 1)
	assert.Equal(t, "Food", cards[0].Category)
	assert.Equal(t, "/ˈæp.əl/", cards[0].Transcription)

	out, err = a.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "яблоко")
	assert.Contains(t, out, cards[0].ID)

	out, err = a.run(t, "", "list", "--category", "Animals")
	require.NoError(t, err)
	assert.Contains(t, out, "No flashcards match.")
}

func TestAddRejectsBlankFields(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	_, err := a.run(t, "", "add", "apple", "  ")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = a.run(t, "", "add", "apple", "яблоко", "--image", "not a url")
	require.ErrorIs(t, err, models.ErrValidation)

	assert.Empty(t, a.store.ListAll(context.Background()))
}

func TestEdit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newTestApp(t)
	card := a.seed(t, models.FlashcardFormData{Word: "cat", Translation: "кот", Category: "Animals"})[0]

	out, err := a.run(t, "", "edit", card.ID, "--translation", "кошка", "--category", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated cat")

	updated, ok := a.store.Get(ctx, card.ID)
	require.True(t, ok)
	assert.Equal(t, "кошка", updated.Translation)
	assert.Empty(t, updated.Category)
	assert.Equal(t, card.CreatedAt, updated.CreatedAt)

	_, err = a.run(t, "", "edit", card.ID, "--image", "https://example.com/cat.png")
	require.NoError(t, err)
	_, err = a.run(t, "", "edit", card.ID, "--image", "")
	require.NoError(t, err)
	updated, ok = a.store.Get(ctx, card.ID)
	require.True(t, ok)
	assert.Empty(t, updated.ImageURL)

	_, err = a.run(t, "", "edit", card.ID)
	assert.ErrorContains(t, err, "nothing to change")

	_, err = a.run(t, "", "edit", card.ID, "--word", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = a.run(t, "", "edit", "missing", "--word", "dog")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newTestApp(t)
	cards := a.seed(t,
		models.FlashcardFormData{Word: "cat", Translation: "кот"},
		models.FlashcardFormData{Word: "dog", Translation: "собака"},
	)

	out, err := a.run(t, "n\n", "delete", cards[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, `Delete flashcard "cat" (кот)? [y/N]`)
	assert.Contains(t, out, "Deletion cancelled")
	assert.Len(t, a.store.ListAll(ctx), 2)

	out, err = a.run(t, "yes\n", "delete", cards[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted cat")

	_, err = a.run(t, "", "rm", "--yes", cards[1].ID)
	require.NoError(t, err)
	assert.Empty(t, a.store.ListAll(ctx))

	_, err = a.run(t, "", "delete", "-y", cards[1].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: " y ", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "Sure?"), "input %q", tt.input)
		assert.Equal(t, "Sure? [y/N]: ", out.String())
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a.seed(t,
		models.FlashcardFormData{Word: "bread", Translation: "хлеб", Category: "Food"},
		models.FlashcardFormData{Word: "cat", Translation: "кот", Category: "Animals"},
		models.FlashcardFormData{Word: "apple", Translation: "яблоко", Category: "Food"},
		models.FlashcardFormData{Word: "run", Translation: "бежать"},
	)

	out, err := a.run(t, "", "categories")
	require.NoError(t, err)
	assert.Equal(t, "Animals\nFood\n", out)
}

func TestExport(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	cards := a.seed(t,
		models.FlashcardFormData{Word: "cat", Translation: "кот", Category: "Animals"},
		models.FlashcardFormData{Word: "apple", Translation: "яблоко", Category: "Food", ImageURL: "https://example.com/apple.png"},
	)

	t.Run("yaml", func(t *testing.T) {
		out, err := a.run(t, "", "export")
		require.NoError(t, err)

		var got []exportCard
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.ElementsMatch(t, []exportCard{exportCard(cards[0]), exportCard(cards[1])}, got)
	})

	t.Run("json filtered", func(t *testing.T) {
		out, err := a.run(t, "", "export", "-o", "json", "--category", "Food")
		require.NoError(t, err)

		var got []models.Flashcard
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, []models.Flashcard{cards[1]}, got)
	})

	t.Run("csv", func(t *testing.T) {
		out, err := a.run(t, "", "export", "-o", "csv", "--search", "CAT")
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "word", records[0][1])
		assert.Equal(t, []string{cards[0].ID, "cat", "", "кот", "Animals", ""}, records[1][:6])
	})

	t.Run("single card to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "card.json")
		out, err := a.run(t, "", "export", "--id", cards[1].ID, "-o", "json", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 1 flashcard(s)")

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var got models.Flashcard
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, cards[1], got)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := a.run(t, "", "export", "--id", "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := a.run(t, "", "export", "-o", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("unknown format creates no file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "card.xml")
		_, err := a.run(t, "", "export", "--id", cards[0].ID, "-o", "xml", "-f", path)
		assert.ErrorContains(t, err, "unsupported format")
		assert.NoFileExists(t, path)

		_, err = a.run(t, "", "export", "--id", cards[0].ID, "-o", "xml")
		assert.ErrorContains(t, err, "unsupported format")
		assert.NoFileExists(t, cardFileName(cards[0], "xml"))
	})

	t.Run("format is case insensitive", func(t *testing.T) {
		out, err := a.run(t, "", "export", "-o", "JSON")
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)))
	})
}

func TestCardFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word   string
		format string
		want   string
	}{
		{word: "Apple", format: "yaml", want: "apple.yaml"},
		{word: "ice cream", format: "JSON", want: "ice-cream.json"},
		{word: "../../etc/passwd", format: "csv", want: "etc-passwd.csv"},
		{word: "Straße", format: "yaml", want: "straße.yaml"},
		{word: "?!", format: "yaml", want: "V1StGXR8.yaml"},
	}

	for _, tt := range tests {
		card := models.Flashcard{ID: "V1StGXR8", Word: tt.word}
		assert.Equal(t, tt.want, cardFileName(card, tt.format), "word %q", tt.word)
	}
}

func TestDoctor(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a.seed(t, models.FlashcardFormData{Word: "cat", Translation: "кот"})

	out, err := a.run(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "present: true")
	assert.Contains(t, out, "cards:   1")

	require.NoError(t, a.medium.SetItem(context.Background(), store.DefaultKey, "{not json"))
	out, err = a.run(t, "", "doctor")
	assert.ErrorContains(t, err, "stored collection is unreadable")
	assert.Contains(t, out, "cards:   0")
}

func TestToken(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	_, err := a.run(t, "", "token")
	assert.ErrorContains(t, err, "WORDCARDS_JWT_SECRET")

	a.cfg.JWTSecret = "s3cret"
	out, err := a.run(t, "", "token", "--subject", "me")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)
}

func TestServeHandler(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	a.cfg.AllowedOrigins = []string{"http://localhost:5173"}
	h, err := a.handler(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, h)
}
